package model

// AttendanceDocument is the remote-store row for one record. The document
// key (DocID) carries the record identifier; the value side deliberately
// does not duplicate it. Breaks travel as a JSON array blob.
type AttendanceDocument struct {
	UserID   string  `gorm:"column:user_id;primaryKey;type:varchar(64)" json:"-"`
	DocID    string  `gorm:"column:doc_id;primaryKey;type:varchar(64)" json:"-"`
	Date     string  `gorm:"column:date;type:varchar(10);not null" json:"date"`
	ClockIn  *string `gorm:"column:clock_in;type:varchar(40)" json:"clockIn"`
	ClockOut *string `gorm:"column:clock_out;type:varchar(40)" json:"clockOut"`
	Breaks   string  `gorm:"column:breaks;type:text" json:"breaks"`
}

func (AttendanceDocument) TableName() string {
	return "attendance_documents"
}
