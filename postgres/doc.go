/*
Package postgres manages the storefront's database connection.
As part of connecting, callers apply migrations with MigrateUp,
which records each migration it runs so none runs twice.
Connecting to a test database drops the public schema first.

DB wraps *gorm.DB with the handful of query building and finisher methods the catalog needs,
translating GORM and PostgreSQL failures into the storefront's sentinel errors.
*/
package postgres
