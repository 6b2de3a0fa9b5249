package controllers

import (
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
)

// isDuplicateEntryErr detects unique-index violations from the MySQL driver so
// handlers can answer 409 instead of 500.
func isDuplicateEntryErr(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
