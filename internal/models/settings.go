package models

// CompanyInfo holds the workshop details printed on the dashboard.
type CompanyInfo struct {
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone" bson:"phone"`
	Email   string `json:"email" bson:"email" validate:"omitempty,email"`
	Website string `json:"website" bson:"website"`
}

// NotificationSettings toggles the notification channels.
type NotificationSettings struct {
	Email       bool `json:"email" bson:"email"`
	Browser     bool `json:"browser" bson:"browser"`
	Maintenance bool `json:"maintenance" bson:"maintenance"`
	Reminders   bool `json:"reminders" bson:"reminders"`
}

// Settings is the system-wide display and behaviour configuration.
// It is the only state persisted across sessions.
type Settings struct {
	SystemName  string      `json:"systemName" bson:"systemName" validate:"required"`
	Logo        *string     `json:"logo" bson:"logo"` // data URI or null
	CompanyInfo CompanyInfo `json:"companyInfo" bson:"companyInfo"`

	Theme           string `json:"theme" bson:"theme" validate:"oneof=light dark system"`
	PrimaryColor    string `json:"primaryColor" bson:"primaryColor" validate:"hexcolor"`
	BackgroundColor string `json:"backgroundColor" bson:"backgroundColor" validate:"hexcolor"`

	Language   string `json:"language" bson:"language" validate:"oneof=zh-TW zh-CN en-US"`
	Timezone   string `json:"timezone" bson:"timezone" validate:"required"`
	Currency   string `json:"currency" bson:"currency" validate:"required"`
	DateFormat string `json:"dateFormat" bson:"dateFormat" validate:"oneof=YYYY/MM/DD DD/MM/YYYY MM/DD/YYYY"`

	AutoSave         bool                 `json:"autoSave" bson:"autoSave"`
	AutoSaveInterval int                  `json:"autoSaveInterval" bson:"autoSaveInterval" validate:"gte=1"` // minutes
	Notifications    NotificationSettings `json:"notifications" bson:"notifications"`

	BackupEnabled  bool   `json:"backupEnabled" bson:"backupEnabled"`
	BackupInterval string `json:"backupInterval" bson:"backupInterval" validate:"oneof=daily weekly monthly"`
	DataRetention  int    `json:"dataRetention" bson:"dataRetention" validate:"gte=1"` // months
}

// DefaultSettings returns the factory settings.
func DefaultSettings() Settings {
	return Settings{
		SystemName:       "汽車保養管理系統",
		Logo:             nil,
		Theme:            "light",
		PrimaryColor:     "#3b82f6",
		BackgroundColor:  "#f8fafc",
		Language:         "zh-TW",
		Timezone:         "Asia/Taipei",
		Currency:         "TWD",
		DateFormat:       "YYYY/MM/DD",
		AutoSave:         true,
		AutoSaveInterval: 5,
		Notifications: NotificationSettings{
			Email:       true,
			Browser:     true,
			Maintenance: true,
			Reminders:   true,
		},
		BackupEnabled:  true,
		BackupInterval: "weekly",
		DataRetention:  24,
	}
}
