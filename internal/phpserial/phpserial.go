// Package phpserial reads and writes the subset of PHP's serialize() format
// that WordPress uses for the active_plugins option: an array whose values
// are strings. The encoding is byte-compatible with PHP, since the same row
// is read back by WordPress itself.
package phpserial

import (
	"fmt"
	"strconv"
	"strings"
)

// MarshalStringSlice encodes values as a PHP array with sequential integer
// keys. Any associative keys from a previous decode are intentionally
// discarded; only the values survive a round trip.
func MarshalStringSlice(values []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "a:%d:{", len(values))
	for i, v := range values {
		fmt.Fprintf(&b, "i:%d;s:%d:\"%s\";", i, len(v), v)
	}
	b.WriteString("}")
	return b.String()
}

// UnmarshalStringSlice decodes a PHP-serialized array of strings. Keys may be
// integers or strings and are dropped. Anything else, including scalar
// top-level values, is an error; callers decide whether that means "empty".
func UnmarshalStringSlice(data string) ([]string, error) {
	d := &decoder{input: data}
	values, err := d.array()
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.input) {
		return nil, fmt.Errorf("trailing data at offset %d", d.pos)
	}
	return values, nil
}

type decoder struct {
	input string
	pos   int
}

func (d *decoder) array() ([]string, error) {
	n, err := d.header('a')
	if err != nil {
		return nil, err
	}
	if err := d.expect("{"); err != nil {
		return nil, err
	}
	values := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if err := d.skipKey(); err != nil {
			return nil, fmt.Errorf("element %d key: %w", i, err)
		}
		v, err := d.stringValue()
		if err != nil {
			return nil, fmt.Errorf("element %d value: %w", i, err)
		}
		values = append(values, v)
	}
	if err := d.expect("}"); err != nil {
		return nil, err
	}
	return values, nil
}

// header consumes "<typ>:<count>:" and returns the count.
func (d *decoder) header(typ byte) (int, error) {
	if d.pos >= len(d.input) || d.input[d.pos] != typ {
		return 0, fmt.Errorf("expected %q at offset %d", string(typ), d.pos)
	}
	d.pos++
	if err := d.expect(":"); err != nil {
		return 0, err
	}
	n, err := d.number()
	if err != nil {
		return 0, err
	}
	if err := d.expect(":"); err != nil {
		return 0, err
	}
	return n, nil
}

func (d *decoder) skipKey() error {
	if d.pos >= len(d.input) {
		return fmt.Errorf("unexpected end of input")
	}
	switch d.input[d.pos] {
	case 'i':
		d.pos++
		if err := d.expect(":"); err != nil {
			return err
		}
		if _, err := d.number(); err != nil {
			return err
		}
		return d.expect(";")
	case 's':
		_, err := d.stringValue()
		return err
	default:
		return fmt.Errorf("unsupported key type %q at offset %d", string(d.input[d.pos]), d.pos)
	}
}

// stringValue consumes s:<len>:"<bytes>"; where <len> counts bytes, so the
// payload may freely contain quotes and semicolons.
func (d *decoder) stringValue() (string, error) {
	n, err := d.header('s')
	if err != nil {
		return "", err
	}
	if err := d.expect(`"`); err != nil {
		return "", err
	}
	if d.pos+n > len(d.input) {
		return "", fmt.Errorf("string length %d overruns input", n)
	}
	v := d.input[d.pos : d.pos+n]
	d.pos += n
	if err := d.expect(`";`); err != nil {
		return "", err
	}
	return v, nil
}

func (d *decoder) number() (int, error) {
	start := d.pos
	if d.pos < len(d.input) && d.input[d.pos] == '-' {
		d.pos++
	}
	for d.pos < len(d.input) && d.input[d.pos] >= '0' && d.input[d.pos] <= '9' {
		d.pos++
	}
	if d.pos == start {
		return 0, fmt.Errorf("expected number at offset %d", start)
	}
	n, err := strconv.Atoi(d.input[start:d.pos])
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (d *decoder) expect(s string) error {
	if !strings.HasPrefix(d.input[d.pos:], s) {
		return fmt.Errorf("expected %q at offset %d", s, d.pos)
	}
	d.pos += len(s)
	return nil
}
