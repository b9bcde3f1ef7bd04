package models

// Post — posts table (photo-blog). Image names a file in the uploads
// directory; the file and the row are removed together on delete.
type Post struct {
	Base
	Image   string `gorm:"not null"`
	Caption string `gorm:"type:text"`
}
