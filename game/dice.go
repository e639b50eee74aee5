package game

import "fmt"

const (
	NumDiceFaces = 6

	// A used die stores its face plus usedOffset so the face survives for undo.
	usedOffset = NumDiceFaces
)

// Dice holds the two dice of a turn. 0 means no die rolled, 1-6 an unused face,
// 7-12 a used face.
type Dice [2]int

func (d *Dice) Roll(first, second int) {
	d[0], d[1] = first, second
}

func (d *Dice) Clear() {
	d[0], d[1] = 0, 0
}

func (d Dice) IsEmpty() bool {
	return d[0] == 0 && d[1] == 0
}

// Value returns the face of die i, used or not.
func (d Dice) Value(i int) (int, error) {
	if i < 0 || i >= len(d) {
		return 0, fmt.Errorf("die %d: %w", i, ErrOutOfRange)
	}
	switch v := d[i]; {
	case v >= 1 && v <= NumDiceFaces:
		return v, nil
	case v > NumDiceFaces && v <= 2*NumDiceFaces:
		return v - usedOffset, nil
	default:
		return 0, fmt.Errorf("bad dice value %d: %w", v, ErrInternalInconsistency)
	}
}

func (d Dice) Usable(i int) bool {
	return d[i] >= 1 && d[i] <= NumDiceFaces
}

func (d Dice) IsDouble() bool {
	a, errA := d.Value(0)
	b, errB := d.Value(1)
	return errA == nil && errB == nil && a == b
}

// MarkUsed flags the first unused die showing value.
func (d *Dice) MarkUsed(value int) error {
	for i := range d {
		if d[i] == value && d.Usable(i) {
			d[i] += usedOffset
			return nil
		}
	}
	return fmt.Errorf("mark %d on %v: %w", value, *d, ErrNoSuchDie)
}

// Unmark is the inverse of MarkUsed.
func (d *Dice) Unmark(value int) error {
	for i := range d {
		if d[i] == value+usedOffset {
			d[i] -= usedOffset
			return nil
		}
	}
	return fmt.Errorf("unmark %d on %v: %w", value, *d, ErrNoSuchDie)
}

// unmarkAll clears every used flag and returns how many dice were used.
func (d *Dice) unmarkAll() int {
	used := 0
	for i := range d {
		if d[i] > NumDiceFaces {
			d[i] -= usedOffset
			used++
		}
	}
	return used
}

// usableValues returns the distinct unused faces, highest first.
func (d Dice) usableValues() []int {
	values := make([]int, 0, len(d))
	for i := range d {
		if d.Usable(i) && (len(values) == 0 || values[0] != d[i]) {
			values = append(values, d[i])
		}
	}
	if len(values) == 2 && values[1] > values[0] {
		values[0], values[1] = values[1], values[0]
	}
	return values
}

func (d Dice) usableCount() int {
	n := 0
	for i := range d {
		if d.Usable(i) {
			n++
		}
	}
	return n
}
