package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yerinchoi/lingotalk-backend/internal/data/repos"
	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/ctxutil"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

// ProfileUpdate carries the optional profile fields; nil fields are left as
// they are.
type ProfileUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type UserService interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) (*types.User, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, raw []byte) (*types.User, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	avatarService AvatarService
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, avatarService AvatarService) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo, avatarService: avatarService}
}

func (us *userService) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	ctx = ctxutil.Default(ctx)

	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return users[0], nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) (*types.User, error) {
	ctx = ctxutil.Default(ctx)

	user, err := us.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}

	if upd.Username != nil {
		username := strings.TrimSpace(*upd.Username)
		if username == "" {
			return nil, fmt.Errorf("username cannot be empty")
		}
		if username != user.Username {
			taken, err := us.userRepo.UsernameExists(ctx, nil, username)
			if err != nil {
				return nil, fmt.Errorf("check username: %w", err)
			}
			if taken {
				return nil, ErrUsernameTaken
			}
			updates["username"] = username
			user.Username = username
		}
	}

	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		if !emailRe.MatchString(email) {
			return nil, fmt.Errorf("invalid email address")
		}
		if email != user.Email {
			taken, err := us.userRepo.EmailExists(ctx, nil, email)
			if err != nil {
				return nil, fmt.Errorf("check email: %w", err)
			}
			if taken {
				return nil, ErrEmailTaken
			}
			updates["email"] = email
			user.Email = email
		}
	}

	if upd.Password != nil {
		if len(*upd.Password) < 8 {
			return nil, fmt.Errorf("password must be at least 8 characters")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password"] = string(hashed)
		user.Password = string(hashed)
	}

	if len(updates) == 0 {
		return user, nil
	}

	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return us.userRepo.UpdateFields(ctx, tx, user.ID, updates)
	})
	if err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}
	return user, nil
}

func (us *userService) UpdateAvatar(ctx context.Context, userID uuid.UUID, raw []byte) (*types.User, error) {
	ctx = ctxutil.Default(ctx)

	user, err := us.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := us.avatarService.UpdateUserAvatarFromImage(ctx, user, raw); err != nil {
		return nil, err
	}

	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return us.userRepo.UpdateFields(ctx, tx, user.ID, map[string]any{
			"avatar_path": user.AvatarPath,
			"avatar_url":  user.AvatarURL,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("persist avatar: %w", err)
	}
	return user, nil
}
