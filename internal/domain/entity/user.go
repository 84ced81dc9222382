package entity

// Gender values accepted for a user.
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// Rating is a movie rating embedded in a user document.
type Rating struct {
	MovieID   int64   `bson:"movieid" json:"movieid"`
	Rating    float64 `bson:"rating" json:"rating"`
	Timestamp int64   `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
	Date      string  `bson:"date,omitempty" json:"date,omitempty"`
}

// User represents a user entity in the system
type User struct {
	ID         ID       `bson:"_id,omitempty" json:"_id"`
	Name       string   `bson:"name" json:"name"`
	Gender     string   `bson:"gender" json:"gender"`
	Age        float64  `bson:"age" json:"age"`
	Occupation string   `bson:"occupation" json:"occupation"`
	Movies     []Rating `bson:"movies" json:"movies"`
	NumRatings int      `bson:"num_ratings" json:"num_ratings"`
}

// SetMovies replaces the ratings and keeps NumRatings in sync.
func (u *User) SetMovies(movies []Rating) {
	if movies == nil {
		movies = []Rating{}
	}
	u.Movies = movies
	u.NumRatings = len(movies)
}

// UserProfile is a user as returned by the read endpoint. TopMovies holds
// either the best rated entries or a message when the user rated nothing.
type UserProfile struct {
	ID         ID      `bson:"_id" json:"_id"`
	Name       string  `bson:"name" json:"name"`
	Gender     string  `bson:"gender" json:"gender"`
	Age        float64 `bson:"age" json:"age"`
	Occupation string  `bson:"occupation" json:"occupation"`
	NumRatings int     `bson:"num_ratings" json:"num_ratings"`
	TopMovies  any     `bson:"-" json:"topMovies"`
}

// NewUserProfile copies the identity fields of u.
func NewUserProfile(u *User) *UserProfile {
	return &UserProfile{
		ID:         u.ID,
		Name:       u.Name,
		Gender:     u.Gender,
		Age:        u.Age,
		Occupation: u.Occupation,
		NumRatings: u.NumRatings,
	}
}

// UserRatingStats holds the per-user rating aggregates.
type UserRatingStats struct {
	ID        ID      `bson:"_id" json:"_id"`
	Name      string  `bson:"name" json:"name"`
	MaxRating float64 `bson:"maxRating" json:"maxRating"`
	MinRating float64 `bson:"minRating" json:"minRating"`
	AvgRating float64 `bson:"avgRating" json:"avgRating"`
}
