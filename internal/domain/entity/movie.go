package entity

import "strings"

// MinMovieYear is the exclusive lower bound for a movie's year.
const MinMovieYear = 1500

// Movie represents a movie document.
type Movie struct {
	ID     ID       `bson:"_id,omitempty" json:"_id"`
	Title  string   `bson:"title" json:"title"`
	Year   float64  `bson:"year" json:"year"`
	Genres []string `bson:"genres" json:"genres"`
}

// MovieDetail is a movie together with its average rating. AverageRating is a
// number, or a message when nobody rated the movie.
type MovieDetail struct {
	Movie
	AverageRating any `json:"average_rating"`
}

// MovieAverage is a movie ranked by average rating.
type MovieAverage struct {
	ID          ID      `bson:"_id" json:"_id"`
	Title       string  `bson:"title" json:"title"`
	AvgRating   float64 `bson:"avgRating" json:"avgRating"`
	RatingCount int     `bson:"ratingCount" json:"ratingCount"`
}

// MovieTotal is a movie ranked by the sum of its ratings.
type MovieTotal struct {
	ID          ID      `bson:"_id" json:"_id"`
	Title       string  `bson:"title" json:"title"`
	TotalRating float64 `bson:"totalRating" json:"totalRating"`
}

// MovieStars is a movie ranked by its number of 5-star ratings.
type MovieStars struct {
	ID        ID     `bson:"_id" json:"_id"`
	Title     string `bson:"title" json:"title"`
	FiveStars int    `bson:"fiveStars" json:"fiveStars"`
}

// OriginalTitle is a movie title split around its first parenthesized part.
type OriginalTitle struct {
	ID            ID     `json:"_id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
}

// SplitOriginalTitle splits "Primary (Original) trailing" into "Primary" and
// "Original". Only the first parenthesized group counts; text after its
// closing paren is dropped. ok is false when title has no "(".
func SplitOriginalTitle(title string) (primary, original string, ok bool) {
	open := strings.Index(title, "(")
	if open < 0 {
		return "", "", false
	}
	primary = strings.TrimSpace(title[:open])
	rest := title[open+1:]
	if end := strings.Index(rest, ")"); end >= 0 {
		rest = rest[:end]
	}
	return primary, strings.TrimSpace(rest), true
}
