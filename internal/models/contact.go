package models

import "time"

// Contact is a single entry of the contact book.
type Contact struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactPatch carries the fields of a partial update; nil means "keep".
type ContactPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ContactPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil
}

// Apply merges the supplied fields into c.
func (p ContactPatch) Apply(c *Contact) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
}
