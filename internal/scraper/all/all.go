// Package all imports all available sources for side-effect registration.
//
// Import this package from your main to ensure all sources are registered:
//
//	import _ "github.com/malingi/accabot/internal/scraper/all"
package all

import (
	_ "github.com/malingi/accabot/internal/scraper/betexplorer"
	_ "github.com/malingi/accabot/internal/scraper/oddsportal"
)
