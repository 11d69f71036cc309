package market

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/GlebRadaev/packmarket/internal/domain"
	"github.com/GlebRadaev/packmarket/internal/dto"
	"github.com/GlebRadaev/packmarket/pkg/auth"
	"github.com/GlebRadaev/packmarket/pkg/utils"
)

//go:generate mockgen -source=market.go -destination=mock_market.go -package=market

type Service interface {
	OpenPack(ctx context.Context, userID string, packID int) (*domain.OpenPackResult, error)
	ConvertDiamonds(ctx context.Context, userID string, amount int64) (*domain.Balance, error)
	GetBalance(ctx context.Context, userID string) (*domain.Balance, error)
}

type MarketHandler struct {
	marketService Service
}

func New(marketService Service) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

// OpenPack godoc
//
//	@Summary		Open a pack
//	@Description	Spend the pack price in tokens and receive the drawn items with their serial numbers.
//	@Tags			Market
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.OpenPackRequestDTO	true	"Pack to open"
//	@Success		200		{object}	dto.OpenPackResponseDTO	"Minted items and remaining tokens"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		403		{object}	utils.Response			"Not enough tokens"
//	@Failure		404		{object}	utils.Response			"Unknown pack or user"
//	@Failure		409		{object}	utils.Response			"Concurrent update, retry"
//	@Failure		429		{object}	utils.Response			"Too many requests"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/market/open-pack [post]
func (h *MarketHandler) OpenPack(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.OpenPackRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PackID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.marketService.OpenPack(r.Context(), userID, req.PackID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	response := dto.OpenPackResponseDTO{
		Items:  make([]dto.OwnedItemDTO, len(result.Items)),
		Tokens: result.Tokens,
	}
	for i, item := range result.Items {
		response.Items[i] = dto.OwnedItemDTO{
			ID:         item.ID,
			ItemID:     item.ItemID,
			Shiny:      item.Shiny,
			Serial:     item.Serial,
			ObtainedBy: item.ObtainedBy,
			CreatedAt:  item.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ConvertDiamonds godoc
//
//	@Summary		Convert diamonds to tokens
//	@Description	Exchange diamonds for tokens at the configured rate.
//	@Tags			Market
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	dto.ConvertDiamondsRequestDTO	true	"Diamonds to convert"
//	@Success		204		"Converted"
//	@Failure		400		{object}	utils.Response	"Invalid request body or non-positive amount"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Not enough diamonds"
//	@Failure		404		{object}	utils.Response	"Unknown user"
//	@Failure		429		{object}	utils.Response	"Too many requests"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/market/convert-diamonds [put]
func (h *MarketHandler) ConvertDiamonds(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.ConvertDiamondsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, domain.ErrInvalidAmount.Error())
		return
	}

	if _, err := h.marketService.ConvertDiamonds(r.Context(), userID, req.Amount); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBalance godoc
//
//	@Summary		Get token and diamond balance with the number of packs opened
//	@Tags			Market
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		404	{object}	utils.Response			"Unknown user"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/market/balance [get]
func (h *MarketHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	balance, err := h.marketService.GetBalance(r.Context(), userID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Tokens:      balance.Tokens,
		Diamonds:    balance.Diamonds,
		PacksOpened: balance.PacksOpened,
	})
}

func respondWithDomainError(w http.ResponseWriter, err error) {
	switch domain.Kind(err) {
	case domain.ErrInvalidInput:
		utils.RespondWithError(w, http.StatusBadRequest, publicMessage(err))
	case domain.ErrNotFound:
		utils.RespondWithError(w, http.StatusNotFound, publicMessage(err))
	case domain.ErrForbidden:
		utils.RespondWithError(w, http.StatusForbidden, publicMessage(err))
	case domain.ErrConflict:
		utils.RespondWithError(w, http.StatusConflict, publicMessage(err))
	default:
		zap.L().Error("request failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// publicMessage returns the innermost domain error text, without wrapping context.
func publicMessage(err error) string {
	for _, known := range []error{
		domain.ErrUnknownPack, domain.ErrUnknownUser,
		domain.ErrInsufficientFunds, domain.ErrInsufficientDiamonds, domain.ErrInvalidAmount,
		domain.ErrSerialAllocationFailed, domain.ErrBalanceChanged,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return domain.Kind(err).Error()
}
