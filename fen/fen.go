// Package fen parses and serializes the Forsyth-Edwards position notation
// and validates the result before handing it to the rest of the engine.
// It is a boundary collaborator, not part of the hot-path core.
package fen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chessengine/board"
)

// StartPos is the standard initial position.
const StartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Sentinel errors so callers can errors.Is against parse vs. validation
// failures (spec section 7's "Parse error" / "Validation error" split).
var (
	ErrMalformedFEN    = errors.New("fen: malformed")
	ErrIllegalPosition = errors.New("fen: illegal position")
)

var pieceChars = map[rune]board.Piece{
	'P': {Type: board.Pawn, Color: board.White},
	'N': {Type: board.Knight, Color: board.White},
	'B': {Type: board.Bishop, Color: board.White},
	'R': {Type: board.Rook, Color: board.White},
	'Q': {Type: board.Queen, Color: board.White},
	'K': {Type: board.King, Color: board.White},
	'p': {Type: board.Pawn, Color: board.Black},
	'n': {Type: board.Knight, Color: board.Black},
	'b': {Type: board.Bishop, Color: board.Black},
	'r': {Type: board.Rook, Color: board.Black},
	'q': {Type: board.Queen, Color: board.Black},
	'k': {Type: board.King, Color: board.Black},
}

var charForPiece = map[board.PieceType][2]rune{
	board.Pawn:   {'P', 'p'},
	board.Knight: {'N', 'n'},
	board.Bishop: {'B', 'b'},
	board.Rook:   {'R', 'r'},
	board.Queen:  {'Q', 'q'},
	board.King:   {'K', 'k'},
}

// Parse parses fen into a Position, then validates it.
func Parse(fenStr string) (*board.Position, error) {
	fields := strings.Fields(fenStr)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: expected at least 4 space-separated fields, got %d", ErrMalformedFEN, len(fields))
	}

	pos := board.NewEmpty()

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: expected 8 ranks, got %d", ErrMalformedFEN, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			switch {
			case ch >= '1' && ch <= '8':
				file += int(ch - '0')
			default:
				p, ok := pieceChars[ch]
				if !ok {
					return nil, fmt.Errorf("%w: unrecognized piece character %q", ErrMalformedFEN, ch)
				}
				if file >= 8 {
					return nil, fmt.Errorf("%w: too many squares on rank %d", ErrMalformedFEN, rank+1)
				}
				pos.SetPiece(board.SquareOf(file, rank), p)
				file++
			}
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank %d does not sum to 8 files", ErrMalformedFEN, rank+1)
		}
	}

	switch fields[1] {
	case "w":
		pos.SetSideToMove(board.White)
	case "b":
		pos.SetSideToMove(board.Black)
	default:
		return nil, fmt.Errorf("%w: side to move must be 'w' or 'b', got %q", ErrMalformedFEN, fields[1])
	}

	var rights board.CastlingRights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				rights |= board.WhiteKingSide
			case 'Q':
				rights |= board.WhiteQueenSide
			case 'k':
				rights |= board.BlackKingSide
			case 'q':
				rights |= board.BlackQueenSide
			default:
				return nil, fmt.Errorf("%w: invalid castling character %q", ErrMalformedFEN, ch)
			}
		}
	}
	pos.SetCastlingRights(rights)

	ep := board.NoSquare
	if fields[3] != "-" {
		if len(fields[3]) != 2 {
			return nil, fmt.Errorf("%w: invalid en-passant square %q", ErrMalformedFEN, fields[3])
		}
		file, rank := fields[3][0], fields[3][1]
		if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
			return nil, fmt.Errorf("%w: en-passant square %q out of range", ErrMalformedFEN, fields[3])
		}
		ep = board.SquareOf(int(file-'a'), int(rank-'1'))
	}
	pos.SetEnPassantSquare(ep)

	halfmove := 0
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("%w: halfmove clock: %v", ErrMalformedFEN, err)
		}
		halfmove = n
	}
	pos.SetHalfmoveClock(halfmove)

	fullmove := 1
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("%w: fullmove number: %v", ErrMalformedFEN, err)
		}
		fullmove = n
	}
	pos.SetFullmoveNumber(fullmove)

	pos.RecomputeAfterSetup()

	if err := validate(pos, ep); err != nil {
		return nil, err
	}
	return pos, nil
}

// validate rejects positions with other than exactly one king per side,
// pawns on rank 1 or 8, or an en-passant square inconsistent with the side
// to move (spec section 6).
func validate(pos *board.Position, ep board.Square) error {
	for _, c := range []board.Color{board.White, board.Black} {
		kings := pos.PiecesOf(c, board.King)
		if kings.Count() != 1 {
			return fmt.Errorf("%w: side %v has %d kings, want exactly 1", ErrIllegalPosition, c, kings.Count())
		}
	}
	pawns := pos.PieceBB(board.Pawn)
	for sq := board.Square(0); sq < 8; sq++ {
		if pawns&board.Bit(sq) != 0 {
			return fmt.Errorf("%w: pawn on rank 1", ErrIllegalPosition)
		}
	}
	for sq := board.Square(56); sq < 64; sq++ {
		if pawns&board.Bit(sq) != 0 {
			return fmt.Errorf("%w: pawn on rank 8", ErrIllegalPosition)
		}
	}
	if ep != board.NoSquare {
		wantRank := 2 // rank 3, White just double-pushed, Black to move
		if pos.SideToMove() == board.White {
			wantRank = 5 // rank 6, Black just double-pushed, White to move
		}
		if ep.Rank() != wantRank {
			return fmt.Errorf("%w: en-passant square on rank %d inconsistent with side to move", ErrIllegalPosition, ep.Rank()+1)
		}
	}
	return nil
}

// String serializes pos back to FEN.
func String(pos *board.Position) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := pos.PieceAt(board.SquareOf(file, rank))
			if p == board.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			chars := charForPiece[p.Type]
			if p.Color == board.White {
				sb.WriteRune(chars[0])
			} else {
				sb.WriteRune(chars[1])
			}
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if pos.SideToMove() == board.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	rights := pos.CastlingRights()
	if rights == 0 {
		sb.WriteByte('-')
	} else {
		if rights&board.WhiteKingSide != 0 {
			sb.WriteByte('K')
		}
		if rights&board.WhiteQueenSide != 0 {
			sb.WriteByte('Q')
		}
		if rights&board.BlackKingSide != 0 {
			sb.WriteByte('k')
		}
		if rights&board.BlackQueenSide != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	if ep := pos.EnPassantSquare(); ep != board.NoSquare {
		sb.WriteByte('a' + byte(ep.File()))
		sb.WriteByte('1' + byte(ep.Rank()))
	} else {
		sb.WriteByte('-')
	}

	fmt.Fprintf(&sb, " %d %d", pos.HalfmoveClock(), pos.FullmoveNumber())
	return sb.String()
}
