package domain

import "time"

// Product is a row in the products reference table. Products exist purely so
// description records can link to them by ID; they are created lazily the
// first time a name is referenced and never updated or deleted here.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedTime time.Time `json:"created_time"`
}
