package services

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mofathy183/beggy-sub000/internal/models"
	"github.com/Mofathy183/beggy-sub000/internal/types"
	"github.com/Mofathy183/beggy-sub000/internal/validation"
)

var userFields = fieldColumns{
	"name":      "name",
	"email":     "email",
	"role":      "role",
	"gender":    "gender",
	"provider":  "provider",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// UserInput is the admin request body for user create/replace. Password is
// only consumed on create; replace leaves the stored hash alone.
type UserInput struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN MEMBER USER"`
	Gender   string `json:"gender" validate:"omitempty,oneof=FEMALE MALE OTHER"`
}

func (in *UserInput) normalize() {
	in.Role = validation.Normalize(in.Role)
	if in.Role == "" {
		in.Role = string(models.RoleUser)
	}
	in.Gender = validation.Normalize(in.Gender)
}

// UserPatch is the request body for partial profile updates.
type UserPatch struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=255"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Role   *string `json:"role" validate:"omitempty,oneof=ADMIN MEMBER USER"`
	Gender *string `json:"gender" validate:"omitempty,oneof=FEMALE MALE OTHER"`
}

func (p *UserPatch) normalize() {
	if p.Role != nil {
		normalized := validation.Normalize(*p.Role)
		p.Role = &normalized
	}
	if p.Gender != nil {
		normalized := validation.Normalize(*p.Gender)
		p.Gender = &normalized
	}
}

// PasswordChange is the request body for updating the caller's password.
type PasswordChange struct {
	Current string `json:"currentPassword" validate:"required"`
	New     string `json:"newPassword" validate:"required,min=8,max=72"`
}

// FindUsers lists users matching the parsed query options, returning the page
// and the unpaginated total.
func FindUsers(db *gorm.DB, opts types.QueryOptions) ([]models.User, int64, error) {
	query := applyFilter(db.Model(&models.User{}), opts, userFields)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := applyPagination(applySort(query, opts, userFields), opts).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// FindUserByID fetches one user.
func FindUserByID(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// CreateUser persists a user with an explicit role, for admin provisioning.
// Duplicate emails surface as ErrUniqueConstraint.
func CreateUser(db *gorm.DB, input UserInput) (*models.User, error) {
	input.normalize()
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if err := validation.Var(input.Password, "required,min=8,max=72"); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
		Role:     models.Role(input.Role),
		Gender:   models.Gender(input.Gender),
		Provider: models.ProviderLocal,
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, translateError(err)
	}

	return &user, nil
}

// ReplaceUser overwrites the mutable profile fields of a user. The password
// hash and provider never change through this path.
func ReplaceUser(db *gorm.DB, id uuid.UUID, input UserInput) (*models.User, error) {
	input.normalize()
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user, err := FindUserByID(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":   input.Name,
		"email":  input.Email,
		"role":   input.Role,
		"gender": input.Gender,
	}
	if err := db.Model(user).Updates(updates).Error; err != nil {
		return nil, translateError(err)
	}

	return user, nil
}

// ModifyUser applies a partial profile update; only fields present in the
// patch change.
func ModifyUser(db *gorm.DB, id uuid.UUID, patch UserPatch) (*models.User, error) {
	patch.normalize()
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	user, err := FindUserByID(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}
	if patch.Gender != nil {
		updates["gender"] = *patch.Gender
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := db.Model(user).Updates(updates).Error; err != nil {
		return nil, translateError(err)
	}

	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func ChangePassword(db *gorm.DB, id uuid.UUID, input PasswordChange) error {
	if err := validation.Struct(input); err != nil {
		return err
	}

	user, err := FindUserByID(db, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Current)); err != nil {
		return types.ErrUnauthorized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.New), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Model(user).Update("password", string(hash)).Error
}

// RemoveUserByID deletes a user together with everything they own: join rows
// first, then items, bags and suitcases, then the account.
func RemoveUserByID(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		user, err := FindUserByID(tx, id)
		if err != nil {
			return err
		}

		if err := removeOwnedResources(tx, user.ID); err != nil {
			return err
		}

		return tx.Delete(user).Error
	})
}

// RemoveAllUsers deletes every user matching the query filter and returns the
// deleted count. A filter matching nothing yields count 0.
func RemoveAllUsers(db *gorm.DB, opts types.QueryOptions) (int64, error) {
	var deleted int64

	err := db.Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		query := applyFilter(tx.Model(&models.User{}), opts, userFields)
		if err := query.Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		for _, id := range ids {
			if err := removeOwnedResources(tx, id); err != nil {
				return err
			}
		}

		result := tx.Where("id IN ?", ids).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})

	return deleted, err
}

func removeOwnedResources(tx *gorm.DB, userID uuid.UUID) error {
	var itemIDs []uuid.UUID
	if err := tx.Model(&models.Item{}).Where("user_id = ?", userID).Pluck("id", &itemIDs).Error; err != nil {
		return err
	}
	if len(itemIDs) > 0 {
		if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.BagItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.SuitcaseItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", itemIDs).Delete(&models.Item{}).Error; err != nil {
			return err
		}
	}

	var bagIDs []uuid.UUID
	if err := tx.Model(&models.Bag{}).Where("user_id = ?", userID).Pluck("id", &bagIDs).Error; err != nil {
		return err
	}
	if len(bagIDs) > 0 {
		if err := tx.Where("bag_id IN ?", bagIDs).Delete(&models.BagItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", bagIDs).Delete(&models.Bag{}).Error; err != nil {
			return err
		}
	}

	var suitcaseIDs []uuid.UUID
	if err := tx.Model(&models.Suitcase{}).Where("user_id = ?", userID).Pluck("id", &suitcaseIDs).Error; err != nil {
		return err
	}
	if len(suitcaseIDs) > 0 {
		if err := tx.Where("suitcase_id IN ?", suitcaseIDs).Delete(&models.SuitcaseItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", suitcaseIDs).Delete(&models.Suitcase{}).Error; err != nil {
			return err
		}
	}

	return nil
}
