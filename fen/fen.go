//////////////////////////////////////////////////////
// fen.go
// Forsyth-Edwards Notation parsing and serialization: the engine core
// consumes the first four fields (placement, side, castling, en-passant)
// and ignores the halfmove/fullmove clocks — search depth is bounded by
// the time control, not the fifty-move rule, so the core has no use for
// them
// zurichess sources: position.go PositionFromFEN/ParsePiecePlacement;
// package layout follows treepeck-chego's sibling fen package
//////////////////////////////////////////////////////

package fen

import (
	"fmt"
	"strings"

	"github.com/Forsinge/Piston/engine"
)

// StartPos is the standard chess starting position in FEN.
const StartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var figureToTier = map[byte]engine.Tier{
	'p': engine.TierPawn,
	'n': engine.TierKnight,
	'b': engine.TierBishop,
	'r': engine.TierRook,
	'q': engine.TierQueen,
	'k': engine.TierKing,
}

// Parse builds a Position from a FEN string. Only the first four fields
// are interpreted; the halfmove and fullmove clocks, if present, are
// accepted but discarded, since the engine core never tracks them.
func Parse(s string) (engine.Position, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return engine.Position{}, fmt.Errorf("fen: too few fields in %q", s)
	}

	var pos engine.Position
	// Side to move must be parsed before placement: PlacePiece sorts
	// each piece into Player or Enemy by comparing its color against
	// pos.Turn.
	if err := parseSideToMove(fields[1], &pos); err != nil {
		return engine.Position{}, fmt.Errorf("fen: %w", err)
	}
	if err := parsePlacement(fields[0], &pos); err != nil {
		return engine.Position{}, fmt.Errorf("fen: %w", err)
	}
	if err := parseCastling(fields[2], &pos); err != nil {
		return engine.Position{}, fmt.Errorf("fen: %w", err)
	}
	if err := parseEnPassant(fields[3], &pos); err != nil {
		return engine.Position{}, fmt.Errorf("fen: %w", err)
	}

	engine.FinalizePosition(&pos)
	return pos, nil
}

// parsePlacement reads the 8-rank piece placement field. FEN lists ranks
// 8 down to 1, file a to h within each rank — exactly the order this
// engine's square numbering walks (square 0 is a8), so each character
// maps onto the next square index in turn.
func parsePlacement(field string, pos *engine.Position) error {
	sq := 0
	for _, r := range field {
		switch {
		case r == '/':
			continue
		case r >= '1' && r <= '8':
			sq += int(r - '0')
		default:
			if sq >= 64 {
				return fmt.Errorf("piece placement overruns the board: %q", field)
			}
			tier, ok := figureToTier[byte(toLower(r))]
			if !ok {
				return fmt.Errorf("invalid piece letter %q", string(r))
			}
			white := r >= 'A' && r <= 'Z'
			engine.PlacePiece(pos, engine.Square(sq), tier, white)
			sq++
		}
	}
	if sq != 64 {
		return fmt.Errorf("piece placement covers %d squares, want 64: %q", sq, field)
	}
	return nil
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func parseSideToMove(field string, pos *engine.Position) error {
	switch field {
	case "w":
		pos.Turn = true
	case "b":
		pos.Turn = false
	default:
		return fmt.Errorf("invalid side to move %q", field)
	}
	return nil
}

func parseCastling(field string, pos *engine.Position) error {
	if field == "-" {
		return nil
	}
	for _, r := range field {
		switch r {
		case 'K':
			pos.CastleFlags |= engine.CastleWhiteShort
		case 'Q':
			pos.CastleFlags |= engine.CastleWhiteLong
		case 'k':
			pos.CastleFlags |= engine.CastleBlackShort
		case 'q':
			pos.CastleFlags |= engine.CastleBlackLong
		default:
			return fmt.Errorf("invalid castling letter %q", string(r))
		}
	}
	return nil
}

// parseEnPassant stores the FEN capture-target square as the *pawn*
// square the position actually tracks: FEN says "e3" for a white double
// push, but the pawn that can be captured en passant sits on e4.
func parseEnPassant(field string, pos *engine.Position) error {
	if field == "-" {
		return nil
	}
	sq, err := engine.SquareFromString(field)
	if err != nil {
		return fmt.Errorf("invalid en-passant square %q: %w", field, err)
	}
	pawnSq := pos.EnPassantPawnSquare(sq)
	pos.EnPassant = engine.BITS[pawnSq]
	return nil
}

// String serializes pos back to the first four FEN fields; halfmove and
// fullmove clocks are always emitted as "0 1" since the core doesn't
// track them.
func String(pos *engine.Position) string {
	var sb strings.Builder
	for rank := 0; rank < 8; rank++ {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := engine.Square(rank*8 + file)
			letter, ok := engine.PieceLetter(pos, sq)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if rank != 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if pos.Turn {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	castling := ""
	if pos.CastleFlags&engine.CastleWhiteShort != 0 {
		castling += "K"
	}
	if pos.CastleFlags&engine.CastleWhiteLong != 0 {
		castling += "Q"
	}
	if pos.CastleFlags&engine.CastleBlackShort != 0 {
		castling += "k"
	}
	if pos.CastleFlags&engine.CastleBlackLong != 0 {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	sb.WriteByte(' ')
	if pos.EnPassant == 0 {
		sb.WriteByte('-')
	} else {
		sb.WriteString(pos.CaptureTargetSquare().String())
	}

	sb.WriteString(" 0 1")
	return sb.String()
}
