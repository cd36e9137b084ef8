package request

import (
	"net/url"
	"strings"

	"library-catalog/pkg/utils"
)

type RegisterRequest struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"required,max=254,email"`
	Password1 string `form:"password1" validate:"required,min=8,maxbytes=72,notnumeric"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

func NewRegisterRequest(form url.Values) RegisterRequest {
	return RegisterRequest{
		Username:  strings.TrimSpace(form.Get("username")),
		Email:     strings.TrimSpace(form.Get("email")),
		Password1: form.Get("password1"),
		Password2: form.Get("password2"),
	}
}

func (r RegisterRequest) Validate() map[string]string {
	return utils.ValidateStruct(r)
}

type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next" validate:"-"`
}

func NewLoginRequest(form url.Values) LoginRequest {
	return LoginRequest{
		Username: strings.TrimSpace(form.Get("username")),
		Password: form.Get("password"),
		Next:     form.Get("next"),
	}
}

func (r LoginRequest) Validate() map[string]string {
	return utils.ValidateStruct(r)
}

// ClientInfo describes the client a session is issued to
type ClientInfo struct {
	UserAgent string
	IPAddress string
}
