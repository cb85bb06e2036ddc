package game

import "time"

const (
	MinSize = 4
	MaxSize = 1000
)

type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// PlayerType is 'h' for a human or 'c' for the scripted computer.
type PlayerType string

const (
	Human    PlayerType = "h"
	Computer PlayerType = "c"
)

// Valid reports whether t names a known player type.
func (t PlayerType) Valid() bool {
	return t == Human || t == Computer
}

// Cursor is a player's next scripted move and the number of moves the
// script has generated so far.
type Cursor struct {
	Row   int `json:"row" bson:"row"`
	Col   int `json:"col" bson:"col"`
	Count int `json:"count" bson:"count"`
}

// Snapshot is everything a save file holds.
type Snapshot struct {
	Height     int      `json:"height" bson:"height"`
	Width      int      `json:"width" bson:"width"`
	NextPlayer Stone    `json:"next_player" bson:"next_player"`
	Black      Cursor   `json:"black_cursor" bson:"black_cursor"`
	White      Cursor   `json:"white_cursor" bson:"white_cursor"`
	Rows       []string `json:"rows" bson:"rows"`
}

type Record struct {
	ID         string     `json:"id" bson:"_id"`
	BlackType  PlayerType `json:"black_type" bson:"black_type"`
	WhiteType  PlayerType `json:"white_type" bson:"white_type"`
	Snapshot   Snapshot   `json:"snapshot" bson:"snapshot"`
	Status     Status     `json:"status" bson:"status"`
	Winner     Stone      `json:"winner,omitempty" bson:"winner,omitempty"`
	Moves      []Move     `json:"moves" bson:"moves"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
}

// TypeOf returns the player type controlling colour.
func (r *Record) TypeOf(colour Stone) PlayerType {
	if colour == White {
		return r.WhiteType
	}
	return r.BlackType
}

type CreateGameRequest struct {
	Height int        `json:"height"`
	Width  int        `json:"width"`
	Black  PlayerType `json:"black"`
	White  PlayerType `json:"white"`
}

type MoveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// GameStateResponse is pushed to websocket subscribers after every move.
type GameStateResponse struct {
	GameID string     `json:"game_id"`
	Move   Move       `json:"move"`
	Result MoveResult `json:"result"`
	Rows   []string   `json:"rows"`
	Next   Stone      `json:"next_player"`
}

type ArchiveResponse struct {
	PageNum    int      `json:"page_num"`
	TotalPages int      `json:"total_pages"`
	Games      []Record `json:"games"`
}
