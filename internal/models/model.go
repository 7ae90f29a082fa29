package models

import "time"

type Post struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Shayri   string `json:"shayri"`
}

type Contact struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}
