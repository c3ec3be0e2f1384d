package model

// Service is one entry of the price list.
type Service struct {
	ID    int64  `db:"id" json:"id,omitempty"`
	Name  string `db:"name" json:"name" binding:"required,max=120"`
	Price string `db:"price" json:"price" binding:"max=40"`
	Desc  string `db:"description" json:"desc" binding:"max=500"`
}
