package main

import (
	"github.com/nanami9426/officerchat/internal/models"
	"github.com/nanami9426/officerchat/internal/utils"
)

// Creates the chat tables, plus the unit tables for standalone deployments.
func main() {
	utils.InitConfig()
	utils.InitLogger()

	db, err := utils.OpenDB(utils.V.GetString("database.driver"), true)
	if err != nil {
		utils.Log.Fatal().Err(err).Msg("failed to connect database")
	}

	// Migrate the schema
	if err := models.AutoMigrate(db); err != nil {
		utils.Log.Fatal().Err(err).Msg("migration failed")
	}
	utils.Log.Info().Str("driver", utils.V.GetString("database.driver")).Msg("migration finished")
}
