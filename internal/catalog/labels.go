package catalog

import "strings"

// Labels holds every user-visible string of the catalog UI.
type Labels struct {
	Locale string

	WindowTitle string
	Headers     []string

	Ground    string
	WholeBean string

	Refresh string
	Add     string
	Edit    string
	Save    string
	Cancel  string

	NewTitle  string
	EditTitle string

	SortName         string
	RoastLevel       string
	IsGround         string
	TasteDescription string
	Price            string
	PackageVolume    string

	ErrorTitle        string
	StorageErrorTitle string
	DatabaseNotFound  string // takes the database path
	RecordNotFound    string
	SelectRecord      string
	BadSelection      string
	FillTextFields    string
	BadNumbers        string
}

var russian = Labels{
	Locale:      "ru",
	WindowTitle: "Каталог кофе",
	Headers: []string{
		"ID",
		"Название сорта",
		"Степень обжарки",
		"Молотый/в зернах",
		"Описание вкуса",
		"Цена",
		"Объем упаковки",
	},
	Ground:            "Молотый",
	WholeBean:         "В зернах",
	Refresh:           "Обновить",
	Add:               "Добавить",
	Edit:              "Редактировать",
	Save:              "Сохранить",
	Cancel:            "Отмена",
	NewTitle:          "Новая запись",
	EditTitle:         "Редактирование записи",
	SortName:          "Название сорта",
	RoastLevel:        "Степень обжарки",
	IsGround:          "Молотый/в зернах",
	TasteDescription:  "Описание вкуса",
	Price:             "Цена",
	PackageVolume:     "Объем упаковки",
	ErrorTitle:        "Ошибка",
	StorageErrorTitle: "Ошибка SQLite",
	DatabaseNotFound:  "База данных не найдена: %s",
	RecordNotFound:    "Запись не найдена.",
	SelectRecord:      "Выберите запись для редактирования.",
	BadSelection:      "Не удалось получить ID записи.",
	FillTextFields:    "Заполните все текстовые поля.",
	BadNumbers:        "Цена и объем упаковки должны быть неотрицательными числами.",
}

var english = Labels{
	Locale:      "en",
	WindowTitle: "Coffee catalog",
	Headers: []string{
		"ID",
		"Sort name",
		"Roast level",
		"Ground/whole bean",
		"Taste description",
		"Price",
		"Package volume",
	},
	Ground:            "ground",
	WholeBean:         "whole bean",
	Refresh:           "Refresh",
	Add:               "Add",
	Edit:              "Edit",
	Save:              "Save",
	Cancel:            "Cancel",
	NewTitle:          "New record",
	EditTitle:         "Edit record",
	SortName:          "Sort name",
	RoastLevel:        "Roast level",
	IsGround:          "Ground/whole bean",
	TasteDescription:  "Taste description",
	Price:             "Price",
	PackageVolume:     "Package volume",
	ErrorTitle:        "Error",
	StorageErrorTitle: "Storage error",
	DatabaseNotFound:  "Database not found: %s",
	RecordNotFound:    "Record not found.",
	SelectRecord:      "Select a record to edit.",
	BadSelection:      "Could not read the record ID.",
	FillTextFields:    "Fill in all text fields.",
	BadNumbers:        "Price and package volume must be non-negative numbers.",
}

// LabelsFor returns the labels for locale, falling back to Russian.
func LabelsFor(locale string) Labels {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "en", "en-us", "en-gb", "english":
		return english
	default:
		return russian
	}
}

// GroundLabel renders the ground/whole-bean flag.
func (l Labels) GroundLabel(isGround bool) string {
	if isGround {
		return l.Ground
	}
	return l.WholeBean
}
