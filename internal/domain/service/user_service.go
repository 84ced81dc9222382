package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jrjohn/moviedb-api/internal/domain/dao"
	"github.com/jrjohn/moviedb-api/internal/domain/entity"
	"github.com/jrjohn/moviedb-api/internal/domain/validation"
	"github.com/jrjohn/moviedb-api/pkg/logger"
)

// TopMoviesLimit is the number of ratings shown on a user profile.
const TopMoviesLimit = 5

// NoRatingsMessage replaces topMovies for users who rated nothing.
const NoRatingsMessage = "this user has not rated any movie yet"

// UserService defines the interface for user operations
type UserService interface {
	// List returns one page of users ordered by id.
	List(ctx context.Context, req PageRequest) (*dao.PageResult[entity.User], error)

	// Create validates every user of the batch and inserts all of them, or
	// none when any item is invalid.
	Create(ctx context.Context, items []any) (*dao.InsertResult, error)

	// Get returns the user with its top rated movies.
	Get(ctx context.Context, id entity.ID) (*entity.UserProfile, error)

	// Update applies a partial update from body.
	Update(ctx context.Context, id entity.ID, body any) (*dao.UpdateResult, error)

	// Delete removes the user.
	Delete(ctx context.Context, id entity.ID) (*dao.DeleteResult, error)

	// Stats returns per-user rating statistics ordered by average rating.
	Stats(ctx context.Context) ([]*entity.UserRatingStats, error)
}

// userService implements UserService
type userService struct {
	users     dao.UserDAO
	validator *validation.UserValidator
	logger    *zap.Logger
	now       func() time.Time
}

// NewUserService creates a new UserService instance
func NewUserService(users dao.UserDAO, validator *validation.UserValidator, log *zap.Logger) UserService {
	return &userService{
		users:     users,
		validator: validator,
		logger:    logger.ForComponent(log, "user_service"),
		now:       time.Now,
	}
}

func (s *userService) List(ctx context.Context, req PageRequest) (*dao.PageResult[entity.User], error) {
	return paginate[entity.User](ctx, s.users, req)
}

func (s *userService) Create(ctx context.Context, items []any) (*dao.InsertResult, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}
	payloads := make([]map[string]any, len(items))
	var invalid []UserErrors

	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			invalid = append(invalid, UserErrors{UserIndex: i, Errors: []string{"user must be an object"}})
			continue
		}
		payload := validation.FilterUserFields(obj)
		errs, err := s.validator.ValidateCreate(ctx, payload)
		if err != nil {
			s.logger.Error("Movie lookup failed during validation", zap.Error(err))
			return nil, err
		}
		if len(errs) > 0 {
			invalid = append(invalid, UserErrors{UserIndex: i, Errors: errs})
			continue
		}
		payloads[i] = payload
	}
	if len(invalid) > 0 {
		return nil, ErrInvalidUserData.WithDetails(invalid)
	}

	now := s.now()
	users := make([]*entity.User, len(payloads))
	for i, payload := range payloads {
		users[i] = validation.NewUser(payload, now)
	}

	result, err := s.users.InsertMany(ctx, users)
	if err != nil {
		s.logger.Error("Failed to insert users", zap.Int("count", len(users)), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Users created", zap.Int("count", result.InsertedCount))
	return result, nil
}

func (s *userService) Get(ctx context.Context, id entity.ID) (*entity.UserProfile, error) {
	user, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(user.Movies) == 0 {
		profile := entity.NewUserProfile(user)
		profile.TopMovies = NoRatingsMessage
		return profile, nil
	}

	profile, err := s.users.FindProfile(ctx, id, TopMoviesLimit)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		// ratings removed between the two reads
		profile = entity.NewUserProfile(user)
		profile.TopMovies = NoRatingsMessage
	}
	return profile, nil
}

func (s *userService) Update(ctx context.Context, id entity.ID, body any) (*dao.UpdateResult, error) {
	if _, err := s.mustFind(ctx, id); err != nil {
		return nil, err
	}

	obj, err := requireObject(body)
	if err != nil {
		return nil, err
	}

	payload := validation.FilterUserFields(obj)
	if len(payload) == 0 {
		return nil, ErrNoValidFields
	}

	errs, err := s.validator.ValidateUpdate(ctx, payload)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, ErrInvalidUserData.WithDetails(errs)
	}

	return s.users.Update(ctx, id, validation.UserUpdateFields(payload, s.now()))
}

func (s *userService) Delete(ctx context.Context, id entity.ID) (*dao.DeleteResult, error) {
	if _, err := s.mustFind(ctx, id); err != nil {
		return nil, err
	}
	result, err := s.users.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete user", zap.Stringer("id", id), zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (s *userService) Stats(ctx context.Context) ([]*entity.UserRatingStats, error) {
	return s.users.RatingStats(ctx)
}

func (s *userService) mustFind(ctx context.Context, id entity.ID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// requireObject rejects arrays and scalars where a single object is expected.
func requireObject(body any) (map[string]any, error) {
	switch v := body.(type) {
	case map[string]any:
		return v, nil
	case []any:
		return nil, ErrObjectExpected.WithMessage("request body must be an object, not an array")
	default:
		return nil, ErrObjectExpected
	}
}
