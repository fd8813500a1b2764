package utils // seat number allocation helpers shared by the booking workflow

import "fmt"

// SeatLetters is the fixed cabin letter cycle.  Seats fill a row from
// A to F before moving to the next row.
const SeatLetters = "ABCDEF"

// FormatSeat renders a zero-based seat index as a seat number of the
// form two-digit row plus letter, e.g. index 14 -> "03C".
func FormatSeat(index int) string {
	row := index/len(SeatLetters) + 1
	letter := SeatLetters[index%len(SeatLetters)]
	return fmt.Sprintf("%02d%c", row, letter)
}

// AllocateSeats returns count free seat numbers for a flight, walking
// the seat grid from 01A upward and skipping seats present in taken.
// The caller must hold a lock on the flight row so that the taken set
// cannot change underneath the allocation; collisions with concurrent
// bookings are additionally caught by the (flight, seat) unique key.
func AllocateSeats(taken map[string]struct{}, count int) []string {
	seats := make([]string, 0, count)
	for idx := 0; len(seats) < count; idx++ {
		s := FormatSeat(idx)
		if _, used := taken[s]; used {
			continue
		}
		seats = append(seats, s)
	}
	return seats
}
