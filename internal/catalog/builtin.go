package catalog

import "github.com/jscyril/mediacore/api"

// Builtin returns the last-resort sample catalog. Each call returns a fresh copy.
func Builtin() []api.CatalogItem {
	return []api.CatalogItem{
		{
			ID: "builtin-ocean-breath", Title: "Ocean Breath", Artist: "Calm Collective",
			Cover: "builtin/covers/ocean.jpg", AudioLocator: "builtin/audio/ocean-breath.mp3",
			Category: api.CategoryMeditation, Mood: api.MoodCalm, Duration: "10:00",
		},
		{
			ID: "builtin-rain-on-leaves", Title: "Rain on Leaves", Artist: "Nature Loops",
			Cover: "builtin/covers/rain.jpg", AudioLocator: "builtin/audio/rain-on-leaves.mp3",
			Category: api.CategorySleep, Mood: api.MoodCalm, Duration: "30:00",
		},
		{
			ID: "builtin-deep-focus", Title: "Deep Focus Alpha", Artist: "Brainwave Lab",
			Cover: "builtin/covers/focus.jpg", AudioLocator: "builtin/audio/deep-focus.mp3",
			Category: api.CategoryFocus, Mood: api.MoodCalm, Duration: "45:00",
		},
		{
			ID: "builtin-morning-sun", Title: "Morning Sun Salutation", Artist: "Yoga Flow",
			Cover: "builtin/covers/sun.jpg", AudioLocator: "builtin/audio/morning-sun.mp3",
			Category: api.CategoryEnergy, Mood: api.MoodHappy, Duration: "08:20",
		},
		{
			ID: "builtin-tum-hi-ho", Title: "Tum Hi Ho", Artist: "Arijit Singh",
			Cover: "builtin/covers/tum-hi-ho.jpg", AudioLocator: "builtin/audio/tum-hi-ho.mp3",
			Category: api.CategoryRelax, Mood: api.MoodRomantic, Duration: "04:22",
		},
		{
			ID: "builtin-evening-raga", Title: "Evening Raga", Artist: "Sitar Sessions",
			Cover: "builtin/covers/raga.jpg", AudioLocator: "builtin/audio/evening-raga.mp3",
			Category: api.CategoryRelax, Mood: api.MoodSad, Duration: "12:05",
		},
		{
			ID: "builtin-power-hour", Title: "Power Hour", Artist: "Pulse Runners",
			Cover: "builtin/covers/power.jpg", AudioLocator: "builtin/audio/power-hour.mp3",
			Category: api.CategoryEnergy, Mood: api.MoodEnergetic, Duration: "03:45",
		},
	}
}

// BuiltinKaraoke returns the last-resort karaoke catalog.
func BuiltinKaraoke() []api.CatalogItem {
	return []api.CatalogItem{
		{
			ID: "karaoke-starlight", Title: "Starlight Avenue", Artist: "The Open Mics",
			Cover: "builtin/covers/starlight.jpg", AudioLocator: "builtin/karaoke/starlight-avenue.mp3",
			Category: api.CategoryKaraoke, Mood: api.MoodHappy, Duration: "00:32",
			Cues: []api.LyricCue{
				{Time: 0, Text: "♪ ♪ ♪"},
				{Time: 4, Text: "Walking down the starlight avenue"},
				{Time: 8, Text: "Every window humming something new"},
				{Time: 12, Text: "Take the microphone and sing it through"},
				{Time: 16, Text: "Starlight, starlight"},
				{Time: 20, Text: "Shining just for you"},
				{Time: 26, Text: "♪ ♪ ♪"},
			},
		},
		{
			ID: "karaoke-paper-boats", Title: "Paper Boats", Artist: "Monsoon Choir",
			Cover: "builtin/covers/paper-boats.jpg", AudioLocator: "builtin/karaoke/paper-boats.mp3",
			Category: api.CategoryKaraoke, Mood: api.MoodCalm, Duration: "00:28",
			Cues: []api.LyricCue{
				{Time: 0, Text: "Rain upon the window pane"},
				{Time: 5, Text: "Paper boats along the lane"},
				{Time: 10, Text: "Fold a wish and let it sail"},
				{Time: 15, Text: "Carried by the gentle gale"},
				{Time: 20, Text: "Paper boats, paper boats"},
			},
		},
		{
			ID: "karaoke-heartbeat-road", Title: "Heartbeat Road", Artist: "Arijit Singh",
			Cover: "builtin/covers/heartbeat.jpg", AudioLocator: "builtin/karaoke/heartbeat-road.mp3",
			Category: api.CategoryKaraoke, Mood: api.MoodRomantic, Duration: "00:30",
			Cues: []api.LyricCue{
				{Time: 0, Text: "Every mile I count the stars"},
				{Time: 6, Text: "Every star a step to you"},
				{Time: 12, Text: "On this heartbeat road of ours"},
				{Time: 18, Text: "Every road leads back to you"},
			},
		},
	}
}
