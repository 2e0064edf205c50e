package handlers

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

func TestRegisterValidatorsDigitsRule(t *testing.T) {
	if err := RegisterValidators(); err != nil {
		t.Fatalf("RegisterValidators: %v", err)
	}
	if err := RegisterValidators(); err != nil {
		t.Fatalf("second RegisterValidators: %v", err)
	}

	ok := CreateClientRequest{
		FirstName: "Jan",
		LastName:  "Kowalski",
		Email:     "jan@example.com",
		Telephone: "987654321",
		Pesel:     "85121254321",
	}
	if err := binding.Validator.ValidateStruct(ok); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	bad := ok
	bad.Pesel = "8512125432x"
	if err := binding.Validator.ValidateStruct(bad); err == nil {
		t.Fatalf("pesel with a letter must be rejected")
	}

	bad = ok
	bad.Telephone = "９８７６５４３２１"
	if err := binding.Validator.ValidateStruct(bad); err == nil {
		t.Fatalf("non-ASCII digits must be rejected")
	}
}
