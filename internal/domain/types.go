package domain

// Grid is the 9x9 cell matrix. Values are 1-9; 0 marks an empty cell.
type Grid [9][9]uint8

// Mask marks editable cells: true where the initial grid was empty,
// false where a given was pre-filled.
type Mask [9][9]bool

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Session is one play-through of a puzzle.
type Session struct {
	ID        string `json:"id"`
	Initial   Grid   `json:"initial"`
	Grid      Grid   `json:"grid"`
	Editable  Mask   `json:"editable"`
	Moves     int    `json:"moves"`
	Solved    bool   `json:"solved"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// SessionMeta is a lightweight listing entry.
type SessionMeta struct {
	ID        string `json:"id"`
	Moves     int    `json:"moves"`
	Solved    bool   `json:"solved"`
	CreatedAt int64  `json:"createdAt"`
}

// MoveRecord is one journal entry. Every update attempt is recorded,
// rejected ones included.
type MoveRecord struct {
	SessionID string `json:"sessionId"`
	Seq       int    `json:"seq"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Value     int    `json:"value"`
	Outcome   string `json:"outcome"`
	PlayedAt  int64  `json:"playedAt"`
}

// OutcomeApplied marks a committed move in the journal; rejected moves
// carry the report code of the rule they broke instead.
const OutcomeApplied = "applied"
