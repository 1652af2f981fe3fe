package postgres

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/xy-planning-network/storefront"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// safeGORMSession clones the current statement so chaining off it leaves the original untouched.
var safeGORMSession = &gorm.Session{}

// A Scope is a reusable query fragment applied with *DB.Scope.
type Scope func(*DB) *DB

type DB struct {
	// *gorm.DB's methods are generally unsafe to use.
	// Some *gorm.DB methods are not thread-safe
	// and mutate the state of the *gorm.DB backing DB.
	//
	// If a *gorm.DB method calls *gorm.DB.getInstance,
	// it creates a new pointer and is safe to chain.
	// Otherwise, use *gorm.DB.Session to force a clean pointer.
	db *gorm.DB
}

// NewDB constructs a *DB from a *gorm.DB.
func NewDB(db *gorm.DB) *DB { return &DB{db: db} }

// DB exposes the underlying *gorm.DB backing DB.
//
// NB: use in exceptional circumstances only.
func (db *DB) DB() *gorm.DB { return db.db }

// WithContext runs the query under ctx.
func (db *DB) WithContext(ctx context.Context) *DB { return &DB{db.db.WithContext(ctx)} }

// **************************************************************************
// FINISHER METHODS
//
// These methods close out a current query, executing it.
// All finisher methods are terminal and cannot be chained.
// They return any errors occuring within the query chain
// or when executing the query.
//
// **************************************************************************

// Count returns the number of records matching the current query or an error.
func (db *DB) Count() (int64, error) {
	if db.db.Error != nil {
		return 0, db.db.Error
	}

	var count int64
	if err := db.db.Count(&count).Error; err != nil {
		err = fmt.Errorf("%w: %s", storefront.ErrUnexpected, err)
		return 0, err
	}

	return count, nil
}

// Create inserts value into the database, updating value with new data yielding from that insertion.
//
// Value must be a pointer, otherwise ErrUnaddressable returns.
// If value violates a unique constraint defined by the database, ErrExists returns.
// If value is not a database table, ErrMissingData returns.
func (db *DB) Create(value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %T must be a non-nil pointer or slice", storefront.ErrUnaddressable, value)
		}
	}()

	if db.db.Error != nil {
		return db.db.Error
	}

	err = db.db.Session(&gorm.Session{FullSaveAssociations: false}).Create(value).Error
	switch {
	case err == nil:
		return nil

	case errors.Is(err, schema.ErrUnsupportedDataType), errors.Is(err, gorm.ErrInvalidData):
		return fmt.Errorf("%w: %T does not implement gorm.TableNamer", storefront.ErrMissingData, value)

	case errUniqViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", storefront.ErrExists, err)

	default:
		return fmt.Errorf("%w: failed creating %T: %s", storefront.ErrUnexpected, value, err)
	}
}

// Exists asserts whether any record matches the current query.
func (db *DB) Exists() (bool, error) {
	if db.db.Error != nil {
		return false, db.db.Error
	}

	var exists bool
	err := db.db.Raw("SELECT EXISTS(?)", db.db.Session(safeGORMSession)).Scan(&exists).Error
	if err != nil {
		err = fmt.Errorf("%w: %s", storefront.ErrUnexpected, err)
		return false, err
	}

	return exists, nil
}

// Find retrieves all records matching the current query
// and stores them in dest.
//
// If dest is not a valid type for the table queried,
// then ErrNotValid returns.
// If no matches are found, Find returns ErrNotFound.
func (db *DB) Find(dest any) (err error) {
	badDest := fmt.Errorf("%w: %T cannot be scanned into", storefront.ErrNotValid, dest)
	defer func() {
		if r := recover(); r != nil {
			err = badDest
		}
	}()

	if db.db.Error != nil {
		return db.db.Error
	}

	res := db.db.Find(dest)
	err = res.Error
	if err != nil && errSQLScan.MatchString(err.Error()) {
		return badDest
	}

	if err != nil && errSQLSyntax.MatchString(err.Error()) {
		return fmt.Errorf("%w: %s", storefront.ErrNotValid, err)
	}

	if err != nil {
		return fmt.Errorf("%w: %s", storefront.ErrUnexpected, err)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w", storefront.ErrNotFound)
	}

	return nil
}

// First retrieves a single record from the database matching the query
// and stores it in dest.
//
// If no matches are found, First returns ErrNotFound.
func (db *DB) First(dest any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	err := db.db.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %T", storefront.ErrNotFound, dest)
	}

	if err != nil && errSQLSyntax.MatchString(err.Error()) {
		return fmt.Errorf("%w: %s", storefront.ErrNotValid, err)
	}

	if err != nil {
		return fmt.Errorf("%w: %s", storefront.ErrUnexpected, err)
	}

	return nil
}

// Paged turns the results of the current query into a paginated version: PagedData.
//
// Paged requires Model; with Table, the type rows scan into cannot be known
// and ErrUnaddressable returns.
func (db *DB) Paged(page, perPage int64) (pd PagedData, err error) {
	defer func() {
		// NOTE: reflect can panic.
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: Paged panicked: %s", storefront.ErrUnexpected, r)
			pd = PagedData{}
		}
	}()

	if db.db.Error != nil {
		return PagedData{}, db.db.Error
	}

	model := db.DB().Statement.Model
	if model == nil {
		err = fmt.Errorf("%w: must use Model with Paged", storefront.ErrUnaddressable)
		return PagedData{}, err
	}

	reflectType := reflect.TypeOf(model).Elem()
	if reflectType.Kind() != reflect.Slice {
		model = reflect.New(reflect.SliceOf(reflectType)).Interface()
	}

	pd.Items = model
	pd.Page = max(1, page)
	pd.PerPage = max(1, perPage)

	var totalRecords int64
	err = db.db.Session(safeGORMSession).Count(&totalRecords).Error
	if err != nil {
		return PagedData{}, fmt.Errorf("%w: %s", storefront.ErrUnexpected, err)
	}

	offset := int((pd.Page - 1) * pd.PerPage)
	err = db.Limit(int(pd.PerPage)).Offset(offset).DB().Find(pd.Items).Error
	if err != nil {
		return PagedData{}, fmt.Errorf("%w: %s", storefront.ErrUnexpected, err)
	}

	// NOTE: use math/big for accurate division.
	totalPages := new(big.Float).SetInt(big.NewInt(totalRecords))
	totalPages.Quo(totalPages, new(big.Float).SetInt(big.NewInt(pd.PerPage)))

	// NOTE: Int64 rounds towards zero, so add one when it truncates to get the ceiling.
	var acc big.Accuracy
	pd.TotalPages, acc = totalPages.Int64()
	if acc == big.Below {
		pd.TotalPages += 1
	}

	pd.TotalItems = totalRecords

	return pd, nil
}

// **************************************************************************
// QUERY BUILDING METHODS
//
// Query building methods initiate a query and then add clauses to it
// until a finisher method is called.
// The caller can chain methods.
//
// **************************************************************************

// Distinct adds a DISTINCT clause over columns to the current query.
// No columns is the equivalent of all columns, i.e.: *.
func (db *DB) Distinct(columns ...string) *DB {
	if len(columns) == 0 {
		columns = []string{"*"}
	}

	args := make([]any, len(columns))
	for i, c := range columns {
		args[i] = c
	}

	return &DB{db.db.Distinct(args...)}
}

// Limit applies a LIMIT clause to the current query.
func (db *DB) Limit(limit int) *DB {
	// NOTE: GORM drops a negative LIMIT while PostgreSQL errors on it.
	// This Limit mirrors PostgreSQL, not GORM.
	if limit < 0 {
		gdb := db.DB().Session(safeGORMSession)
		_ = gdb.AddError(fmt.Errorf("%w: limit must not be negative", storefront.ErrNotValid))
		return &DB{db: gdb}
	}

	return &DB{db: db.db.Limit(limit)}
}

// Model declares the table used for the query.
//
// Model computes the name for the database table from the type of model,
// taking the plural of the table, for example:
// - Product -> products
//
// Unless, model implements: func TableName() string
// The value returned from that function is used instead.
func (db *DB) Model(model any) *DB { return &DB{db: db.db.Model(model)} }

// Offset applies an OFFSET clause to the current query.
func (db *DB) Offset(offset int) *DB {
	if offset < 0 {
		gdb := db.DB().Session(safeGORMSession)
		_ = gdb.AddError(fmt.Errorf("%w: offset must not be negative", storefront.ErrNotValid))
		return &DB{db: gdb}
	}

	return &DB{db: db.db.Offset(offset)}
}

// Order applies an ORDER BY clause to the current query.
func (db *DB) Order(order string) *DB { return &DB{db: db.db.Order(order)} }

// Scope applies the scope to the existing query.
func (db *DB) Scope(scope Scope) *DB {
	return &DB{db: db.db.Scopes(func(dbx *gorm.DB) *gorm.DB {
		return scope(NewDB(dbx)).DB()
	})}
}

// Select applies a SELECT statement to the current query.
func (db *DB) Select(columns ...string) *DB { return &DB{db: db.db.Select(columns)} }

// Table defines which database table to query for the current query.
//
// Calling Table multiple times or in conjuction with Model
// in the same query chain is undefined behavior.
func (db *DB) Table(name string) *DB { return &DB{db: db.db.Table(name)} }

// Where applies the query fragment or subquery to the current query
// as a WHERE or AND clause.
//
// Where supports one or none args.
// If more than one arg is passed, finisher methods will return ErrNotValid.
func (db *DB) Where(query any, args ...any) *DB {
	if len(args) > 1 {
		gdb := db.DB().Session(safeGORMSession)
		_ = gdb.AddError(fmt.Errorf("%w: Where supports one or none args", storefront.ErrNotValid))
		return &DB{db: gdb}
	}

	var err error
	args, err = unwrap(args...)
	if err != nil && !errors.Is(err, errNilArg) {
		gdb := db.DB().Session(safeGORMSession)
		_ = gdb.AddError(err)
		return &DB{db: gdb}
	}

	return &DB{db.db.Where(query, args...)}
}

// unwrap exposes the *gorm.DB behind any *DB passed as a subquery.
//
// If a *DB in args is in an error state, unwrap returns that error,
// so the calling method can stop a partial query from running.
func unwrap(args ...any) ([]any, error) {
	var err error
	res := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case *DB:
			gdb := v.DB()
			if gdb.Error != nil {
				err = errors.Join(err, gdb.Error)
			}
			res[i] = gdb

		case nil:
			res[i] = arg
			err = errors.Join(err, storefront.ErrNotValid, errNilArg)

		default:
			res[i] = arg
		}
	}

	return res, err
}
