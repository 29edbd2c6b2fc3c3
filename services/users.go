package services

import (
	"context"
	"strings"

	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/utils"
	"gorm.io/gorm"
)

// UserService is the admin's view of accounts
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UserInput creates an account
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// UserUpdate is a partial account update
type UserUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Location *string `json:"location"`
}

// newUser validates in and builds the account with a hashed password
func newUser(in UserInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Role == "" {
		in.Role = models.RoleVendor
	}

	var errs utils.FieldValidationErrors
	if ok, msg := utils.ValidateName(in.Name); !ok {
		errs.Add("name", msg)
	}
	if ok, msg := utils.ValidateEmail(in.Email); !ok {
		errs.Add("email", msg)
	}
	if ok, msg := utils.ValidatePassword(in.Password); !ok {
		errs.Add("password", msg)
	}
	if ok, msg := utils.ValidatePhone(in.Phone); !ok {
		errs.Add("phone", msg)
	}
	if !models.ValidRole(in.Role) {
		errs.Add("role", "Role must be vendor, driver or admin")
	}
	if len(errs) > 0 {
		return nil, utils.NewAppError(utils.KindInvalidInput, errs.Error(), errs)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, utils.UnexpectedError("Failed to process password", err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     in.Role,
		Location: strings.TrimSpace(in.Location),
	}
	if in.Phone != "" {
		user.Phone = &in.Phone
	}
	return user, nil
}

// insertUser stores a new account, reporting a taken email as a conflict
func insertUser(db *gorm.DB, user *models.User) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return storeError(err, "")
	}
	if count > 0 {
		return utils.ConflictError("Email already registered", nil)
	}
	if err := db.Create(user).Error; err != nil {
		if utils.IsKind(storeError(err, ""), utils.KindConflict) {
			return utils.ConflictError("Email or phone already registered", err)
		}
		return storeError(err, "")
	}
	return nil
}

// List returns accounts, optionally of one role
func (s *UserService) List(ctx context.Context, role string) ([]models.User, error) {
	q := s.db.WithContext(ctx).Order("id ASC")
	if role != "" {
		if !models.ValidRole(role) {
			return nil, utils.InvalidInputError("Invalid role")
		}
		q = q.Where("role = ?", role)
	}
	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, storeError(err, "")
	}
	return users, nil
}

// Create adds an account of any role
func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	user, err := newUser(in)
	if err != nil {
		return nil, err
	}
	if err := insertUser(s.db.WithContext(ctx), user); err != nil {
		return nil, err
	}
	utils.LogInfo("User %d (%s) created by admin", user.ID, user.Role)
	return user, nil
}

// Update changes name, email, role or location
func (s *UserService) Update(ctx context.Context, id uint, in UserUpdate) (*models.User, error) {
	db := s.db.WithContext(ctx)
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, storeError(err, "User not found")
	}

	var errs utils.FieldValidationErrors
	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if ok, msg := utils.ValidateName(name); !ok {
			errs.Add("name", msg)
		}
		updates["name"] = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if ok, msg := utils.ValidateEmail(email); !ok {
			errs.Add("email", msg)
		}
		updates["email"] = email
	}
	if in.Role != nil {
		if !models.ValidRole(*in.Role) {
			errs.Add("role", "Role must be vendor, driver or admin")
		}
		updates["role"] = *in.Role
	}
	if in.Location != nil {
		updates["location"] = strings.TrimSpace(*in.Location)
	}
	if len(errs) > 0 {
		return nil, utils.NewAppError(utils.KindInvalidInput, errs.Error(), errs)
	}

	if email, ok := updates["email"].(string); ok && email != user.Email {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
			return nil, storeError(err, "")
		}
		if count > 0 {
			return nil, utils.ConflictError("Email already registered", nil)
		}
	}

	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, storeError(err, "User not found")
		}
	}
	if err := db.First(&user, id).Error; err != nil {
		return nil, storeError(err, "User not found")
	}
	return &user, nil
}

// Delete removes an account. Orders keep referring to it.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return storeError(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("User not found")
	}
	utils.LogInfo("User %d deleted", id)
	return nil
}

// EnsureAdmin creates the seed admin account unless the email is taken
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	user, err := newUser(UserInput{Name: name, Email: email, Password: password, Role: models.RoleAdmin})
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).
		Where(models.User{Email: user.Email}).
		Attrs(models.User{Name: user.Name, Password: user.Password, Role: user.Role}).
		FirstOrCreate(user).Error
	if err != nil {
		return storeError(err, "")
	}
	utils.LogInfo("Admin account ready: %s", user.Email)
	return nil
}
