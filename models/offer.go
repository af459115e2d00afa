package models

import "time"

// PriceOffer is a buyer's price proposal for a listed snake
type PriceOffer struct {
	ID        int64     `json:"id,omitempty"`
	SnakeID   string    `json:"snakeId"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Amount    int64     `json:"amount"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// PriceOfferResponse is returned once an offer has been accepted for forwarding
type PriceOfferResponse struct {
	Status  string `json:"status"`
	SnakeID string `json:"snakeId"`
}

// InquiryResponse carries the text a buyer copies into a messaging app
type InquiryResponse struct {
	SnakeID string `json:"snakeId"`
	Text    string `json:"text"`
}

// AssistantRequest is a question for the care assistant
type AssistantRequest struct {
	Question string `json:"question"`
}

// AssistantResponse is the care assistant's answer
type AssistantResponse struct {
	Answer  string `json:"answer"`
	IsError bool   `json:"isError,omitempty"`
}
