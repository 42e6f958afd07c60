package models

// User is the account resource of the REST API. Password is write-only and
// never comes back in responses.
type User struct {
	ID         int64  `json:"id"`
	Login      string `json:"login"`
	Password   string `json:"password,omitempty"`
	Surname    string `json:"surname,omitempty"`
	Name       string `json:"name,omitempty"`
	Patronymic string `json:"patronymic,omitempty"`
}

type UserCreate struct {
	Login      string `json:"login"`
	Password   string `json:"password"`
	Surname    string `json:"surname,omitempty"`
	Name       string `json:"name,omitempty"`
	Patronymic string `json:"patronymic,omitempty"`
}

// UserPatch carries only the fields the user actually filled in.
type UserPatch struct {
	Password   string `json:"password,omitempty"`
	Surname    string `json:"surname,omitempty"`
	Name       string `json:"name,omitempty"`
	Patronymic string `json:"patronymic,omitempty"`
}

func (patch UserPatch) IsEmpty() bool {
	return patch.Password == "" && patch.Surname == "" && patch.Name == "" && patch.Patronymic == ""
}

type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type LoginResult struct {
	Success bool   `json:"success"`
	UserID  int64  `json:"userId"`
	Login   string `json:"login"`
	Error   string `json:"error,omitempty"`
}
