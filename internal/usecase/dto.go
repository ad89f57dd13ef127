package usecase

import (
	"io"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
)

type DistributeLeadsInput struct {
	FileName string
	Content  io.Reader
}

type DistributeLeadsOutput struct {
	Message  string            `json:"message"`
	Items    []*entity.Lead    `json:"items"`
	Total    int               `json:"total"`
	BatchID  string            `json:"-"`
	Stats    DistributionStats `json:"-"`
	PerAgent map[string]int    `json:"-"`
}

type CreateAgentInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

type UpdateAgentInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}
