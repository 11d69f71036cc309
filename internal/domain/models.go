package domain

import "time"

const ObtainMethodPackOpen = "PACK_OPEN"

type ItemWeight struct {
	ItemID   int     `json:"id"`
	Name     string  `json:"name"`
	RarityID int     `json:"rarityId"`
	Weight   float64 `json:"weight"`
	// VideoID marks a notable item: pulling it triggers the celebratory broadcast.
	VideoID *int `json:"videoId,omitempty"`
}

func (i ItemWeight) Notable() bool {
	return i.VideoID != nil
}

type Pack struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Price       int64        `json:"price"`
	Enabled     bool         `json:"enabled"`
	Booster     float64      `json:"booster"`
	TotalWeight float64      `json:"totalWeight"`
	DrawCount   int          `json:"drawCount"`
	Items       []ItemWeight `json:"items"`
}

// BoosterMultiplier is never below 1.0.
func (p Pack) BoosterMultiplier() float64 {
	if p.Booster < 1 {
		return 1
	}
	return p.Booster
}

func (p Pack) Draws() int {
	if p.DrawCount < 1 {
		return 1
	}
	return p.DrawCount
}

type Rarity struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	ShinyProbability float64 `json:"shinyChance"`
}

// PackSnapshot is a pack together with the rarity table loaded alongside it.
type PackSnapshot struct {
	Pack     Pack
	Rarities map[int]Rarity
}

type DrawResult struct {
	Item   ItemWeight
	Shiny  bool
	Rarity Rarity
}

type OwnedItem struct {
	ID                int64     `db:"id"`
	UserID            string    `db:"user_id"`
	InitialObtainerID string    `db:"initial_obtainer_id"`
	ItemID            int       `db:"item_id"`
	Shiny             bool      `db:"shiny"`
	ObtainedBy        string    `db:"obtained_by"`
	Serial            int64     `db:"serial"`
	CreatedAt         time.Time `db:"created_at"`
}

type Balance struct {
	UserID   string `db:"id"`
	Tokens   int64  `db:"tokens"`
	Diamonds int64  `db:"diamonds"`
	// PacksOpened is filled only by the balance view.
	PacksOpened int64 `db:"-"`
}

type Statistics struct {
	UserID      string `db:"id"`
	PacksOpened int64  `db:"packs_opened"`
}

type OpenPackResult struct {
	Items  []OwnedItem
	Tokens int64
}

type ChatMessage struct {
	RoomID  int
	Content string
	Nonce   string
}

type InsanePullEvent struct {
	UserID  string `json:"userId"`
	VideoID int    `json:"videoId"`
}
