package handlers

import "travelagency/internal/domain/models"

// CreateClientRequest is the body of POST /clients.
type CreateClientRequest struct {
	FirstName string `json:"firstName" binding:"required,min=3,max=40"`
	LastName  string `json:"lastName" binding:"required,min=3,max=40"`
	Email     string `json:"email" binding:"required,max=50,email"`
	Telephone string `json:"telephone" binding:"required,len=9,digits"`
	Pesel     string `json:"pesel" binding:"required,len=11,digits"`
}

func (r CreateClientRequest) toModel() models.NewClient {
	return models.NewClient{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Telephone: r.Telephone,
		Pesel:     r.Pesel,
	}
}
