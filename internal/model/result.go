package model

// The acknowledgements below keep the shape rendered by the MongoDB driver
// because the frontend reads them as is.

type (
	// An InsertResult is the acknowledgement of an insertion.
	InsertResult struct {
		Acknowledged bool   `json:"acknowledged"`
		InsertedID   string `json:"insertedId"`
	}

	// An UpdateResult is the acknowledgement of an update.
	UpdateResult struct {
		Acknowledged  bool    `json:"acknowledged"`
		MatchedCount  int64   `json:"matchedCount"`
		ModifiedCount int64   `json:"modifiedCount"`
		UpsertedCount int64   `json:"upsertedCount"`
		UpsertedID    *string `json:"upsertedId"`
	}

	// A DeleteResult is the acknowledgement of a deletion.
	DeleteResult struct {
		Acknowledged bool  `json:"acknowledged"`
		DeletedCount int64 `json:"deletedCount"`
	}
)
