package services

import (
	"fmt"
	"log"
	"strings"

	"academy-backend/auth"
	"academy-backend/models"
	"academy-backend/repository"
)

// UserService отвечает за аутентификацию и регистрацию пользователей
type UserService struct {
	store  repository.Store
	scheme auth.PasswordScheme
}

func NewUserService(store repository.Store, scheme auth.PasswordScheme) *UserService {
	return &UserService{store: store, scheme: scheme}
}

// Authenticate возвращает пользователя, если логин и пароль совпали.
// Несовпадение — не ошибка: признак отказа это (nil, nil).
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.store.Users().FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.scheme.Verify(user.Password, password) {
		return nil, nil
	}
	return user, nil
}

// RegisterUser регистрирует пользователя и для ролей student/teacher
// создает связанную запись. Все проверки уникальности выполняются до
// записи, сам пользователь и производная запись сохраняются в одной
// транзакции: регистрация либо проходит целиком, либо не оставляет следов.
func (s *UserService) RegisterUser(user *models.User, role string) (*models.User, error) {
	err := s.store.Atomically(func(st repository.Store) error {
		taken, err := st.Users().ExistsByUsername(user.Username)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("username %q: %w", user.Username, ErrDuplicateUsername)
		}

		taken, err = st.Users().ExistsByEmail(user.Email)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("email %q: %w", user.Email, ErrDuplicateEmail)
		}

		user.Role = role

		switch role {
		case models.RoleStudent:
			existing, err := st.Students().FindByEmail(user.Email)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("student email %q: %w", user.Email, ErrDuplicateEmail)
			}
		case models.RoleTeacher:
			existing, err := st.Teachers().FindByEmail(user.Email)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("teacher email %q: %w", user.Email, ErrDuplicateEmail)
			}
		}

		hashed, err := s.scheme.Hash(user.Password)
		if err != nil {
			return err
		}
		user.Password = hashed

		if err := st.Users().Save(user); err != nil {
			return err
		}

		switch role {
		case models.RoleStudent:
			firstName, lastName := deriveName(user, "Student")
			student := &models.Student{FirstName: firstName, LastName: lastName, Email: user.Email}
			if err := st.Students().Save(student); err != nil {
				return err
			}
		case models.RoleTeacher:
			firstName, lastName := deriveName(user, "Teacher")
			teacher := &models.Teacher{FirstName: firstName, LastName: lastName, Email: user.Email}
			if err := st.Teachers().Save(teacher); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// deriveName строит имя производной записи. Если у пользователя задана
// фамилия, именем становится сам username как есть — так исторически
// ведет себя регистрация, и на это завязаны существующие данные.
// Иначе username делится по первой точке; без точки фамилией становится
// fallback ("Student" или "Teacher").
func deriveName(user *models.User, fallback string) (string, string) {
	if user.LastName != "" {
		return user.Username, user.LastName
	}
	parts := strings.SplitN(user.Username, ".", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return user.Username, fallback
}

func (s *UserService) FindByUsername(username string) (*models.User, error) {
	return s.store.Users().FindByUsername(username)
}

func (s *UserService) FindByEmail(email string) (*models.User, error) {
	return s.store.Users().FindByEmail(email)
}

func (s *UserService) UsernameExists(username string) (bool, error) {
	return s.store.Users().ExistsByUsername(username)
}

func (s *UserService) EmailExists(email string) (bool, error) {
	return s.store.Users().ExistsByEmail(email)
}

// EnsureDefaultAdmin создает администратора по умолчанию, если его нет.
// Вызывается один раз при старте процесса.
func (s *UserService) EnsureDefaultAdmin() error {
	exists, err := s.UsernameExists("admin")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	admin := &models.User{
		Username: "admin",
		Password: "admin123",
		Email:    "admin@example.com",
		LastName: "Admin",
	}
	if _, err := s.RegisterUser(admin, models.RoleAdmin); err != nil {
		return err
	}
	log.Printf("✅ Created default admin user: %s", admin.Email)
	return nil
}
