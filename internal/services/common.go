package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Mofathy183/beggy-sub000/internal/types"
)

// fieldColumns maps exposed query-string field names to columns, per resource.
// Anything not in the map is ignored rather than interpolated into SQL.
type fieldColumns map[string]string

// stringColumn marks which columns get contains (LIKE) matching; the rest use
// equality.
var stringColumns = map[string]bool{
	"name":     true,
	"category": true,
	"color":    true,
	"material": true,
	"type":     true,
	"size":     true,
	"email":    true,
	"role":     true,
	"gender":   true,
	"provider": true,
}

// applyFilter adds the field/search predicate from the parsed query options.
func applyFilter(tx *gorm.DB, opts types.QueryOptions, allowed fieldColumns) *gorm.DB {
	if opts.Field == "" || opts.Search == "" {
		return tx
	}
	column, ok := allowed[opts.Field]
	if !ok {
		return tx
	}
	if stringColumns[opts.Field] {
		return tx.Where(column+" LIKE ?", "%"+opts.Search+"%")
	}
	return tx.Where(column+" = ?", opts.Search)
}

// applySort adds ordering from the parsed query options, falling back to
// created_at when the sort field is not exposed.
func applySort(tx *gorm.DB, opts types.QueryOptions, allowed fieldColumns) *gorm.DB {
	column, ok := allowed[opts.SortBy]
	if !ok {
		column = "created_at"
	}
	return tx.Order(fmt.Sprintf("%s %s", column, opts.Order))
}

// applyPagination adds offset/limit from the parsed query options.
func applyPagination(tx *gorm.DB, opts types.QueryOptions) *gorm.DB {
	return tx.Offset(opts.Offset()).Limit(opts.Limit)
}

// translateError folds GORM's translated driver errors into the service
// failure taxonomy.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return types.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return types.ErrUniqueConstraint
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return types.ErrForeignKey
	default:
		return err
	}
}
