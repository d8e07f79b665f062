package domain

type Supplier struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	ContactPerson string `db:"contact_person" json:"contact_person"`
	Phone         string `db:"phone" json:"phone"`
	Email         string `db:"email" json:"email"`
	Address       string `db:"address" json:"address"`
	CreatedAt     string `db:"created_at" json:"created_at,omitempty"`
}
