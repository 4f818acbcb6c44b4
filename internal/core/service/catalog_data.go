package service

import "github.com/moodify-shop/moodify/internal/core/domain"

var catalogProducts = []domain.Product{
	{ID: "1", Mood: "inspired", Name: "Vision Board Kit", Price: domain.PriceFromString("24.90"), Tagline: "Plan it. See it. Become it.", Tags: []string{"stationery", "creativity"}, Rating: 4.7, Reviews: 128, Category: "Stationery"},
	{ID: "2", Mood: "inspired", Name: "Lined Journal A5", Price: domain.PriceFromString("12.50"), Tagline: "Ideas meet ink.", Tags: []string{"writing"}, Rating: 4.5, Reviews: 314, Category: "Stationery"},
	{ID: "3", Mood: "inspired", Name: "LED Desk Lamp", Price: domain.PriceFromString("39.00"), Tagline: "Light for late-night flow.", Tags: []string{"workspace"}, Rating: 4.3, Reviews: 89, Category: "Workspace"},
	{ID: "4", Mood: "inspired", Name: "Watercolor Set", Price: domain.PriceFromString("19.99"), Tagline: "Color outside the lines.", Tags: []string{"art"}, Rating: 4.8, Reviews: 201, Category: "Art"},
	{ID: "5", Mood: "angry", Name: "Doorway Punching Bag", Price: domain.PriceFromString("29.99"), Tagline: "Vent without dents.", Tags: []string{"fitness"}, Rating: 4.4, Reviews: 177, Category: "Fitness"},
	{ID: "6", Mood: "angry", Name: "Stress Ball Trio", Price: domain.PriceFromString("9.99"), Tagline: "Squeeze the steam out.", Tags: []string{"wellness"}, Rating: 4.2, Reviews: 523, Category: "Wellness"},
	{ID: "7", Mood: "angry", Name: "Noise-Cancel Headphones", Price: domain.PriceFromString("79.00"), Tagline: "Silence is a strategy.", Tags: []string{"audio"}, Rating: 4.6, Reviews: 441, Category: "Audio"},
	{ID: "8", Mood: "angry", Name: "Calm Tea Sampler", Price: domain.PriceFromString("14.50"), Tagline: "Sip. Settle. Reset.", Tags: []string{"wellness"}, Rating: 4.1, Reviews: 266, Category: "Wellness"},
	{ID: "9", Mood: "inspired", Name: "Creative Marker Set", Price: domain.PriceFromString("17.99"), Tagline: "Bold lines. Big ideas.", Tags: []string{"art"}, Rating: 4.6, Reviews: 142, Category: "Art"},
	{ID: "10", Mood: "inspired", Name: "Mini Tripod Light", Price: domain.PriceFromString("22.00"), Tagline: "Light your desk scenes.", Tags: []string{"workspace"}, Rating: 4.4, Reviews: 98, Category: "Workspace"},
	{ID: "11", Mood: "inspired", Name: "Idea Sticky Pack", Price: domain.PriceFromString("8.75"), Tagline: "Color-code the chaos.", Tags: []string{"stationery"}, Rating: 4.3, Reviews: 209, Category: "Stationery"},
	{ID: "12", Mood: "inspired", Name: "Portable Sketch Pad", Price: domain.PriceFromString("13.49"), Tagline: "Capture sparks anywhere.", Tags: []string{"art"}, Rating: 4.5, Reviews: 167, Category: "Art"},
	{ID: "13", Mood: "angry", Name: "Grip Strength Trainer", Price: domain.PriceFromString("12.99"), Tagline: "Channel it into squeeze reps.", Tags: []string{"fitness"}, Rating: 4.4, Reviews: 331, Category: "Fitness"},
	{ID: "14", Mood: "angry", Name: "Weighted Jump Rope", Price: domain.PriceFromString("21.50"), Tagline: "Quick sweat. Quick reset.", Tags: []string{"fitness"}, Rating: 4.2, Reviews: 187, Category: "Fitness"},
	{ID: "15", Mood: "angry", Name: "Cooling Eye Mask", Price: domain.PriceFromString("11.25"), Tagline: "Calm the face tension.", Tags: []string{"wellness"}, Rating: 4.1, Reviews: 146, Category: "Wellness"},
	{ID: "16", Mood: "angry", Name: "Calm-Down Playlist Card", Price: domain.PriceFromString("6.50"), Tagline: "Scan → music → breathe.", Tags: []string{"audio"}, Rating: 4.0, Reviews: 88, Category: "Audio"},
}

var catalogExercises = []domain.Exercise{
	{ID: "grat-5", Mood: "happy", Emoji: "📝", Title: "3 Gratitudes", Desc: "Write 3 oddly-specific gratitudes.", Minutes: 5},
	{ID: "smile-3", Mood: "happy", Emoji: "😊", Title: "Smile Set", Desc: "Hold a gentle smile, breathe 4-4.", Minutes: 3},
	{ID: "dance-6", Mood: "happy", Emoji: "💃", Title: "Micro-Dance", Desc: "1 song, goofy moves, no judging.", Minutes: 6},
	{ID: "ping-7", Mood: "happy", Emoji: "📨", Title: "Kind Ping", Desc: "Send 1 kind text to someone.", Minutes: 7},
	{ID: "breathe-6", Mood: "sad", Emoji: "🌬️", Title: "6-Min Breathing", Desc: "Inhale 4 • exhale 6 • soften shoulders.", Minutes: 6},
	{ID: "note-7", Mood: "sad", Emoji: "🖊️", Title: "Name & Note", Desc: "Name the feeling; write 3 sentences.", Minutes: 7},
	{ID: "step-8", Mood: "sad", Emoji: "🚶", Title: "Gentle Walk", Desc: "Slow walk, eyes open, notice 5 things.", Minutes: 8},
	{ID: "tea-5", Mood: "sad", Emoji: "🍵", Title: "Warm Tea Ritual", Desc: "Brew • hold • sip mindfully.", Minutes: 5},
}
