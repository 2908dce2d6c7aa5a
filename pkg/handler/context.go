package handler

// DI for all handlers alike.

import (
	surveildb "github.com/bbeckley-hub/acinetoscope/pkg/db"
)

type DBContext struct {
	Surveil_DB *surveildb.SurveilDB
}
