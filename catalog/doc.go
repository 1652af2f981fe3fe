/*
Package catalog serves the storefront's products.

A Service lists products by Filter, finds a single product by its ID
and reports the category tree products are filed under.
Stub holds products in memory; Postgres reads them from the products table.
*/
package catalog
