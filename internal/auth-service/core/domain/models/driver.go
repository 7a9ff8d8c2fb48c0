package models

import "time"

const StatusPending = "pending"

// Driver is a full row of the drivers table, hash included.
type Driver struct {
	ID           int64     `json:"id"`
	Nama         string    `json:"nama"`
	Email        string    `json:"email"`
	NoHP         string    `json:"no_hp"`
	PasswordHash []byte    `json:"-"`
	Alamat       *string   `json:"alamat"`
	Kendaraan    *string   `json:"kendaraan"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the projection of a driver that is safe to return to clients.
type Profile struct {
	ID        int64   `json:"id"`
	Nama      string  `json:"nama"`
	Email     string  `json:"email"`
	NoHP      string  `json:"no_hp"`
	Alamat    *string `json:"alamat"`
	Kendaraan *string `json:"kendaraan"`
	Status    string  `json:"status"`
}

func (d Driver) Profile() Profile {
	return Profile{
		ID:        d.ID,
		Nama:      d.Nama,
		Email:     d.Email,
		NoHP:      d.NoHP,
		Alamat:    d.Alamat,
		Kendaraan: d.Kendaraan,
		Status:    d.Status,
	}
}

// Claims is the identity carried by an access token.
type Claims struct {
	DriverID int64
	Email    string
}
