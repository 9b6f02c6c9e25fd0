package postgres

// TableName is the table holding one row per day
const TableName = "daily_rentals"

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS daily_rentals (
		dteday      DATE PRIMARY KEY,
		season      SMALLINT NOT NULL,
		weekday     SMALLINT NOT NULL,
		temp        DOUBLE PRECISION NOT NULL,
		atemp       DOUBLE PRECISION NOT NULL,
		hum         DOUBLE PRECISION NOT NULL,
		windspeed   DOUBLE PRECISION NOT NULL,
		casual      INTEGER NOT NULL,
		registered  INTEGER NOT NULL,
		cnt         INTEGER NOT NULL,
		extras      JSONB
	)
`

var copyColumns = []string{
	"dteday", "season", "weekday",
	"temp", "atemp", "hum", "windspeed",
	"casual", "registered", "cnt", "extras",
}
