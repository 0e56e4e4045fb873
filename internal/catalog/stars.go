package catalog

import "math"

// MaxStars — длина шкалы рейтинга.
const MaxStars = 5

// Stars — разбивка рейтинга на полные, половинную и пустые звёзды.
type Stars struct {
	Full  int  `json:"full"`
	Half  bool `json:"half"`
	Empty int  `json:"empty"`
}

// RatingStars раскладывает рейтинг на звёзды. Дробная часть от 0.5 даёт половинную звезду;
// сумма всегда равна MaxStars, рейтинг вне [0, 5] обрезается.
func RatingStars(rating float64) Stars {
	rating = math.Max(0, math.Min(MaxStars, rating))

	full := int(math.Floor(rating))
	half := rating-float64(full) >= 0.5

	empty := MaxStars - full
	if half {
		empty--
	}

	return Stars{Full: full, Half: half, Empty: empty}
}
