package tools

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// tweetUserFields is the reduced user projection kept on each tweet, in
// output order.
var tweetUserFields = []string{"screen_name", "name", "verified"}

var jsonNull = json.RawMessage("null")

type rawObject = orderedmap.OrderedMap[string, json.RawMessage]

// projectTweetUsers replaces the embedded user object of every element of a
// top-level "tweets" array with {screen_name, name, verified}, or null when
// the tweet has no user. Array length, key order, and all other fields are
// kept byte for byte. Bodies without a tweets array pass through unchanged.
func projectTweetUsers(body json.RawMessage) (json.RawMessage, error) {
	top, ok := decodeObject(body)
	if !ok {
		return body, nil
	}
	raw, ok := top.Get("tweets")
	if !ok {
		return body, nil
	}
	var tweets []json.RawMessage
	if err := json.Unmarshal(raw, &tweets); err != nil || tweets == nil {
		return body, nil
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range tweets {
		if i > 0 {
			buf.WriteByte(',')
		}
		tweet, ok := decodeObject(item)
		if !ok {
			buf.Write(item)
			continue
		}
		user, _ := tweet.Get("user")
		// Set keeps the position of an existing key and appends otherwise.
		tweet.Set("user", projectUser(user))
		buf.Write(encodeObject(tweet))
	}
	buf.WriteByte(']')

	top.Set("tweets", buf.Bytes())
	return encodeObject(top), nil
}

// projectUser keeps only the fields the source user actually carries.
func projectUser(raw json.RawMessage) json.RawMessage {
	user, ok := decodeObject(raw)
	if !ok {
		return jsonNull
	}
	out := orderedmap.New[string, json.RawMessage](len(tweetUserFields))
	for _, field := range tweetUserFields {
		if v, ok := user.Get(field); ok {
			out.Set(field, v)
		}
	}
	return encodeObject(out)
}

// decodeObject reads a JSON object keeping its key order. ok is false for
// anything that is not an object, null included.
func decodeObject(raw json.RawMessage) (*rawObject, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	obj := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(raw, obj); err != nil {
		return nil, false
	}
	return obj, true
}

// encodeObject writes obj back out compactly. Keys are the undecoded bytes
// from the source document and values are raw, so nothing is re-escaped.
func encodeObject(obj *rawObject) json.RawMessage {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(pair.Key)
		buf.WriteString(`":`)
		buf.Write(pair.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}
