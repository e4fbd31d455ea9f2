package domain

import "time"

// toolCallTimeout caps one tool invocation, which may fan out into several
// Riot requests.
const toolCallTimeout = 2 * time.Minute

// recentMatchFetchLimit bounds concurrent match detail requests per call.
const recentMatchFetchLimit = 4
