package models

// Problem is a distinct exercise on the training site, keyed by the
// site-assigned id. Created the first time any user's scrape reveals it and
// never deleted; the name keeps whatever the first writer observed.
type Problem struct {
	ID        int         `gorm:"primary_key;autoIncrement:false" json:"id"`
	Name      string      `gorm:"type:varchar(255);not null" json:"name"`
	Solutions []*Solution `gorm:"foreignKey:ProblemID" json:"-"`
}
