// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: name, password
  - AdminLoginRequest: password
  - SubmitSurveyRequest: user, whisky (ID or name), smell, taste, score

# Response Types

Types for JSON responses:

  - CheckUserResponse: exists
  - LoginResponse: success, message, user
  - SubmitSurveyResponse: success, message, response_id
  - ResetResponse: deleted_count
  - AdminLoginResponse: token, expires_at
  - ErrorResponse: error, message

# Domain Types

  - User: survey participant
  - Whisky: rateable item with optional image
  - SurveyResponse: one participant's tags and score for one whisky

Smell and taste tags are plain string slices end to end.

# Analytics Types

  - TagCount: tag frequency
  - ScoreBucket: rating distribution bucket
  - Summary: overall survey statistics

# Constants

Score scale:

	MinScore = 1
	MaxScore = 5

Tag kinds:

	TagSmell = "smell"
	TagTaste = "taste"
*/
package models
