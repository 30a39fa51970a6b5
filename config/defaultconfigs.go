package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		UseLetters:           false,
		DrawCursorBackground: true,
		DrawLastMove:         true,
		ShowTargets:          true,
		Colors: ConfigColors{
			LightSquare:   180,
			DarkSquare:    137,
			WhitePiece:    255,
			BlackPiece:    232,
			CursorColorBG: 4,
			HeldColorBG:   2,
			TargetColorBG: 108,
			LastMoveBG:    143,
		},
		Symbols: ConfigSymbols{
			Pawn:   '♟',
			Rook:   '♜',
			Knight: '♞',
			Bishop: '♝',
			Queen:  '♛',
			King:   '♚',
			Empty:  ' ',
			Target: '·',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameSettings{
			Width:        8,
			Height:       8,
			StartingSide: 0,
			Layout: [2]SideRanks{
				{Back: "RNBQKBNR", Front: "PPPPPPPP"},
				{Back: "RNBQKBNR", Front: "PPPPPPPP"},
			},
		},
		Storage: StorageSettings{
			Enabled: true,
		},
	}
}
