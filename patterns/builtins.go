package patterns

const (
	SpaceGun = "space gun"
	Glider   = "glider"
	Blinker  = "blinker"
)

func builtins() []Pattern {
	return []Pattern{
		// Gosper-style gun laid out for a 135x90 board, absolute coordinates.
		NewPattern(SpaceGun, Point{},
			Point{15, 11}, Point{15, 12}, Point{16, 11}, Point{16, 12},

			Point{19, 10}, Point{19, 11}, Point{19, 12},
			Point{20, 10}, Point{20, 11}, Point{20, 12},

			Point{24, 8}, Point{24, 9}, Point{24, 13}, Point{24, 14},
			Point{25, 9}, Point{25, 10}, Point{25, 11}, Point{25, 12}, Point{25, 13},
			Point{26, 10}, Point{26, 11}, Point{26, 12},
			Point{27, 11},

			Point{34, 12}, Point{35, 13}, Point{35, 14}, Point{36, 12}, Point{36, 13},

			Point{41, 6}, Point{41, 7}, Point{41, 11}, Point{41, 12},
			Point{42, 8}, Point{42, 9}, Point{42, 10},
			Point{43, 7}, Point{43, 11},
			Point{44, 8}, Point{44, 10},
			Point{45, 9},

			Point{49, 9}, Point{49, 10}, Point{50, 9}, Point{50, 10},
		),
		NewPattern(Glider, Point{5, 5},
			Point{1, 0},
			Point{2, 1},
			Point{0, 2}, Point{1, 2}, Point{2, 2},
		),
		NewPattern(Blinker, Point{10, 10},
			Point{0, 0}, Point{1, 0}, Point{2, 0},
		),
	}
}
