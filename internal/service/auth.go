package service

import (
	"context"
	"strings"

	"github.com/mmeshcher/urbanaura-shop/internal/model"
)

// Фиксированные идентификаторы mock-аутентификации: администратор и
// обычный пользователь, вошедший по произвольной паре email/пароль.
const (
	adminUserID   = 1
	regularUserID = 2
)

// Login выполняет mock-аутентификацию. Пара администратора даёт
// администраторскую сессию; любая непустая пара email/пароль — обычную.
// Возвращает false только при пустом email или пароле, не трогая
// сохранённую сессию.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, bool, error) {
	var user *model.User

	switch {
	case email == s.adminEmail && password == s.adminPassword:
		user = &model.User{
			ID:      adminUserID,
			Name:    "Admin",
			Email:   s.adminEmail,
			IsAdmin: true,
		}
	case email != "" && password != "":
		user = &model.User{
			ID:    regularUserID,
			Name:  localPart(email),
			Email: email,
		}
	default:
		return nil, false, nil
	}

	if err := s.repo.SaveSession(ctx, user); err != nil {
		return nil, false, err
	}

	return user, true, nil
}

// Register создаёт нового пользователя. Проверки данных нет:
// регистрация всегда успешна, идентификатор берётся из текущего времени.
func (s *Service) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	user := &model.User{
		ID:    s.nextID(),
		Name:  name,
		Email: email,
	}

	if err := s.repo.SaveSession(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Logout удаляет запись текущей сессии.
func (s *Service) Logout(ctx context.Context) error {
	return s.repo.DeleteSession(ctx)
}

// CurrentUser возвращает пользователя сохранённой сессии или nil,
// если сессия анонимна.
func (s *Service) CurrentUser(ctx context.Context) (*model.User, error) {
	return s.repo.LoadSession(ctx)
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
