package apiclient

import (
	"context"
	"net/http"

	"github.com/wateringdiary/webapp/internal/models"
)

// Login checks credentials. A rejected login is an *Error with status 401
// and the API's message, also when the API answers 200 with success=false.
func (client *Client) Login(ctx context.Context, login string, password string) (models.LoginResult, error) {
	var result models.LoginResult
	err := client.do(ctx, call{
		op:       "login",
		resource: ResourceSession,
		method:   http.MethodPost,
		path:     []string{"users", "login"},
		body:     models.Credentials{Login: login, Password: password},
	}, &result)
	if err != nil {
		return models.LoginResult{}, err
	}
	if !result.Success || result.UserID <= 0 {
		return models.LoginResult{}, &Error{
			Op:       "login",
			Resource: ResourceSession,
			Status:   http.StatusUnauthorized,
			Message:  result.Error,
		}
	}
	if result.Login == "" {
		result.Login = login
	}
	return result, nil
}

func (client *Client) CreateUser(ctx context.Context, payload models.UserCreate) (models.User, error) {
	var user models.User
	err := client.do(ctx, call{
		op:       "create",
		resource: ResourceUsers,
		method:   http.MethodPost,
		path:     []string{"users"},
		body:     payload,
	}, &user)
	return user, err
}

func (client *Client) GetUser(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := client.do(ctx, call{
		op:       "get",
		resource: ResourceUsers,
		method:   http.MethodGet,
		path:     []string{"users", idSegment(id)},
	}, &user)
	return user, err
}

func (client *Client) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	var user models.User
	err := client.do(ctx, call{
		op:       "update",
		resource: ResourceUsers,
		method:   http.MethodPatch,
		path:     []string{"users", idSegment(id)},
		body:     patch,
	}, &user)
	return user, err
}
