package helpers_test

import (
	"github.com/Marvin-Brouwer/open-adr/types/helpers"
)

func (suite *HelpersTestSuite) getUserData() map[string]any {
	return map[string]any{
		"user": map[string]any{
			"name": "Alice",
			"posts": []any{
				map[string]any{"title": "Hello", "tags": []any{"intro", "welcome"}},
				map[string]any{"title": "World", "tags": []any{"misc"}},
			},
		},
	}
}

func (suite *HelpersTestSuite) TestSplitJSONPath() {
	cases := []struct {
		path     string
		segments []string
	}{
		{"", []string{}},
		{"/", []string{}},
		{"/user/name", []string{"user", "name"}},
		{"/user/posts[1]/title", []string{"user", "posts", "1", "title"}},
		{"/children/2/children", []string{"children", "2", "children"}},
		{"/matrix[0][1]", []string{"matrix", "0", "1"}},
	}

	for _, _case := range cases {
		suite.Equal(_case.segments, helpers.SplitJSONPath(_case.path), _case.path)
	}
}

func (suite *HelpersTestSuite) TestTrailJSONPathLeafToRoot() {
	data := suite.getUserData()
	user := data["user"].(map[string]any)
	posts := user["posts"].([]any)

	trail := helpers.TrailJSONPath(data, "/user/posts[1]/title")

	suite.Equal([]any{"World", posts[1], posts, user, data}, trail)
}

func (suite *HelpersTestSuite) TestTrailJSONPathSlashSegments() {
	data := suite.getUserData()
	user := data["user"].(map[string]any)
	posts := user["posts"].([]any)
	tags := posts[0].(map[string]any)["tags"]

	trail := helpers.TrailJSONPath(data, "/user/posts/0/tags/1")

	suite.Equal([]any{"welcome", tags, posts[0], posts, user, data}, trail)
}

func (suite *HelpersTestSuite) TestTrailJSONPathRoot() {
	data := suite.getUserData()

	suite.Equal([]any{data}, helpers.TrailJSONPath(data, "/"))
	suite.Equal([]any{data}, helpers.TrailJSONPath(data, ""))
}

func (suite *HelpersTestSuite) TestTrailJSONPathBroken() {
	data := suite.getUserData()

	suite.Empty(helpers.TrailJSONPath(data, "/user/doesNotExist/foo"))
	suite.Empty(helpers.TrailJSONPath(data, "/user/posts[5]"))
	suite.Empty(helpers.TrailJSONPath(data, "/user/posts/first"))
	suite.Empty(helpers.TrailJSONPath(data, "/user/name/length"))
	suite.Empty(helpers.TrailJSONPath(nil, "/user"))
}

func (suite *HelpersTestSuite) TestTrailJSONPathTypedValues() {
	data := map[string][]string{
		"tags": {"intro", "welcome"},
	}

	trail := helpers.TrailJSONPath(data, "/tags/1")

	suite.Len(trail, 3)
	suite.Equal("welcome", trail[0])
	suite.Equal([]string{"intro", "welcome"}, trail[1])
}

func (suite *HelpersTestSuite) TestTrailJSONPathLengthMatchesSegments() {
	data := suite.getUserData()

	for _, path := range []string{"/user", "/user/posts", "/user/posts/1", "/user/posts/1/tags/0"} {
		trail := helpers.TrailJSONPath(data, path)
		suite.Len(trail, len(helpers.SplitJSONPath(path))+1, path)
		suite.Equal(data, trail[len(trail)-1], path)
	}
}
