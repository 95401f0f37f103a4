package game

type Difficulty struct {
	Name    string
	Msd     string
	Section string
	NKeys   uint8
	Frets   bool
}

var NKeyMap = map[string]uint8{
	"dance-single": 4,
	"pump-single":  5,
	"guitar-five":  5,
	"dance-solo":   6,
	"dance-double": 8,
}

// FretStyles are played with frets and a strum bar.
var FretStyles = map[string]bool{
	"guitar-five": true,
}
