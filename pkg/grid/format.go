package grid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// grid text parse states
const (
	PARSE_DIMENSIONS = iota
	PARSE_ROWS       = iota
	PARSE_DONE       = iota
)

const (
	passableChar = '.'
	blockedChar  = '#'
)

// WriteGrid stores the grid in the text format understood by NewGridFromFile.
func WriteGrid(g *Grid, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString(g.AsString()); err != nil {
		return err
	}
	return writer.Flush()
}

func NewGridFromFile(filename string) (*Grid, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return NewGridFromReader(file)
}

func NewGridFromString(text string) (*Grid, error) {
	return NewGridFromReader(strings.NewReader(text))
}

// NewGridFromReader parses a grid. The first line holds "rows cols", followed
// by one line of tile characters per row. Lines starting with "# " or "//"
// are comments, empty lines are skipped.
func NewGridFromReader(r io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var g *Grid
	row := 0
	lineNumber := 0

	parseState := PARSE_DIMENSIONS
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if strings.HasPrefix(line, "# ") || strings.HasPrefix(line, "//") {
			// skip comments
			continue
		}

		switch parseState {
		case PARSE_DIMENSIONS:
			fields := strings.Fields(line)
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: expected \"rows cols\", got %q", lineNumber, line)
			}
			rows, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("line %d: rows: %w", lineNumber, err)
			}
			cols, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: cols: %w", lineNumber, err)
			}
			if g, err = NewGrid(rows, cols); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			parseState = PARSE_ROWS
		case PARSE_ROWS:
			if len(line) != g.cols {
				return nil, fmt.Errorf("line %d: row %d has %d tiles, expected %d", lineNumber, row, len(line), g.cols)
			}
			for col := 0; col < len(line); col++ {
				tile, err := tileFromChar(line[col])
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNumber, err)
				}
				g.tiles[row*g.cols+col] = tile
			}
			row++
			if row == g.rows {
				parseState = PARSE_DONE
			}
		case PARSE_DONE:
			return nil, fmt.Errorf("line %d: unexpected content after %d rows", lineNumber, g.rows)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("missing grid dimensions")
	}
	if row != g.rows {
		return nil, fmt.Errorf("grid has %d rows, expected %d", row, g.rows)
	}
	return g, nil
}

// AsString renders the grid in its text format.
func (g *Grid) AsString() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v %v\n", g.rows, g.cols))
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			if g.tiles[row*g.cols+col] == Blocked {
				sb.WriteByte(blockedChar)
			} else {
				sb.WriteByte(passableChar)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func tileFromChar(c byte) (Tile, error) {
	switch c {
	case passableChar, '0', '_':
		return Passable, nil
	case blockedChar, '1':
		return Blocked, nil
	default:
		return Blocked, fmt.Errorf("unknown tile character %q", c)
	}
}
