package dto

import "time"

type OpenPackRequestDTO struct {
	PackID int `json:"packId" example:"1"`
}

type OwnedItemDTO struct {
	ID         int64     `json:"id" example:"1042"`
	ItemID     int       `json:"itemId" example:"7"`
	Shiny      bool      `json:"shiny" example:"false"`
	Serial     int64     `json:"serial" example:"18"`
	ObtainedBy string    `json:"obtainedBy" example:"PACK_OPEN"`
	CreatedAt  time.Time `json:"createdAt" example:"2026-03-01T12:00:00Z"`
}

type OpenPackResponseDTO struct {
	Items  []OwnedItemDTO `json:"items"`
	Tokens int64          `json:"tokens" example:"150"`
}

type ConvertDiamondsRequestDTO struct {
	Amount int64 `json:"amount" example:"5"`
}

type BalanceResponseDTO struct {
	Tokens      int64 `json:"tokens" example:"250"`
	Diamonds    int64 `json:"diamonds" example:"4"`
	PacksOpened int64 `json:"packsOpened" example:"12"`
}
