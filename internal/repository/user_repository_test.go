package repository

import (
	"context"
	"regexp"
	"testing"

	"entreprenapp/internal/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// Captures the update command SetOnline actually sends and decodes its $set
// document back through the entity tags, so a drift between the persisted
// field name and the struct tag fails here.
func TestSetOnlineWritesFieldTheEntityDecodes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("flag round-trips through the entity", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		if err := repo.SetOnline(context.Background(), "user-1", true); err != nil {
			mt.Fatalf("set online: %v", err)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "update" {
			mt.Fatalf("expected an update command, got %+v", evt)
		}
		set := evt.Command.Lookup("updates").
			Array().Index(0).Value().Document().
			Lookup("u", "$set").Document()

		var fields bson.M
		if err := bson.Unmarshal(set, &fields); err != nil {
			mt.Fatalf("decode $set: %v", err)
		}
		fields["_id"] = "user-1"
		raw, err := bson.Marshal(fields)
		if err != nil {
			mt.Fatalf("marshal: %v", err)
		}

		var user entity.User
		if err := bson.Unmarshal(raw, &user); err != nil {
			mt.Fatalf("decode user: %v", err)
		}
		if !user.Online {
			mt.Fatal("Online = false after decoding the document SetOnline wrote")
		}
	})
}

func TestSearchPatternEscapesMetacharacters(t *testing.T) {
	pattern := searchPattern("a.c")
	if pattern["$options"] != "i" {
		t.Fatalf("$options = %v, want i", pattern["$options"])
	}

	re := regexp.MustCompile("(?i)" + pattern["$regex"].(string))
	if re.MatchString("xABCy") {
		t.Fatal("a.c matched abc, dot was not escaped")
	}
	if !re.MatchString("xA.Cy") {
		t.Fatal("a.c did not match its literal occurrence")
	}
}

func TestSearchPatternSurvivesUnbalancedInput(t *testing.T) {
	expr := searchPattern("fund(")["$regex"].(string)
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		t.Fatalf("escaped pattern does not compile: %v", err)
	}
	if !re.MatchString("crowdFUND(ing") {
		t.Fatal("escaped pattern did not match the literal query")
	}
}
