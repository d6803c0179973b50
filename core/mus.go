// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the types persisted by the checkpoint
// store and the article repository. Field order is the wire format; adding
// fields requires appending, never reordering.
var (
	IDMUS               = idMUS{}
	EvaluationResultMUS = evaluationResultMUS{}
	CompiledArticleMUS  = compiledArticleMUS{}
	WorkflowStateMUS    = workflowStateMUS{}
	CheckpointMUS       = checkpointMUS{}
	PublishedArticleMUS = publishedArticleMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

type evaluationResultMUS struct{}

func (evaluationResultMUS) Marshal(e EvaluationResult, bs []byte) (n int) {
	n = ord.Bool.Marshal(e.HasSolution, bs)
	n += ord.Bool.Marshal(e.HasCode, bs[n:])
	n += ord.Bool.Marshal(e.IsResolved, bs[n:])
	n += ord.String.Marshal(e.Reasoning, bs[n:])
	return
}

func (evaluationResultMUS) Unmarshal(bs []byte) (e EvaluationResult, n int, err error) {
	var n1 int
	e.HasSolution, n, err = ord.Bool.Unmarshal(bs)
	if err != nil {
		return
	}
	e.HasCode, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.IsResolved, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Reasoning, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (evaluationResultMUS) Size(e EvaluationResult) (size int) {
	size = ord.Bool.Size(e.HasSolution)
	size += ord.Bool.Size(e.HasCode)
	size += ord.Bool.Size(e.IsResolved)
	size += ord.String.Size(e.Reasoning)
	return
}

type compiledArticleMUS struct{}

func (compiledArticleMUS) Marshal(a CompiledArticle, bs []byte) (n int) {
	n = ord.String.Marshal(a.Symptom, bs)
	n += ord.String.Marshal(a.Diagnosis, bs[n:])
	n += ord.String.Marshal(a.Solution, bs[n:])
	n += ord.String.Marshal(a.CodeSnippet, bs[n:])
	n += ord.String.Marshal(a.Language, bs[n:])
	n += ord.String.Marshal(a.Framework, bs[n:])
	n += varint.Int.Marshal(len(a.Tags), bs[n:])
	for _, tag := range a.Tags {
		n += ord.String.Marshal(tag, bs[n:])
	}
	n += raw.Float64.Marshal(a.Confidence, bs[n:])
	n += ord.String.Marshal(a.Summary, bs[n:])
	n += varint.Int.Marshal(int(a.ArticleType), bs[n:])
	return
}

func (compiledArticleMUS) Unmarshal(bs []byte) (a CompiledArticle, n int, err error) {
	var n1 int
	a.Symptom, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	a.Diagnosis, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Solution, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.CodeSnippet, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Language, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Framework, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var count int
	count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if count > 0 {
		a.Tags = make([]string, count)
		for i := 0; i < count; i++ {
			a.Tags[i], n1, err = ord.String.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return
			}
		}
	}
	a.Confidence, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var articleType int
	articleType, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	a.ArticleType = Category(articleType)
	return
}

func (compiledArticleMUS) Size(a CompiledArticle) (size int) {
	size = ord.String.Size(a.Symptom)
	size += ord.String.Size(a.Diagnosis)
	size += ord.String.Size(a.Solution)
	size += ord.String.Size(a.CodeSnippet)
	size += ord.String.Size(a.Language)
	size += ord.String.Size(a.Framework)
	size += varint.Int.Size(len(a.Tags))
	for _, tag := range a.Tags {
		size += ord.String.Size(tag)
	}
	size += raw.Float64.Size(a.Confidence)
	size += ord.String.Size(a.Summary)
	size += varint.Int.Size(int(a.ArticleType))
	return
}

type workflowStateMUS struct{}

func (workflowStateMUS) Marshal(s WorkflowState, bs []byte) (n int) {
	n = IDMUS.Marshal(s.ThreadID, bs)
	n += varint.Int.Marshal(int(s.Stage), bs[n:])
	n += varint.Int.Marshal(int(s.Category), bs[n:])
	n += ord.Bool.Marshal(s.Evaluation != nil, bs[n:])
	if s.Evaluation != nil {
		n += EvaluationResultMUS.Marshal(*s.Evaluation, bs[n:])
	}
	n += ord.Bool.Marshal(s.Article != nil, bs[n:])
	if s.Article != nil {
		n += CompiledArticleMUS.Marshal(*s.Article, bs[n:])
	}
	n += raw.Float64.Marshal(s.Score, bs[n:])
	n += varint.Int.Marshal(s.RetryCount, bs[n:])
	n += ord.String.Marshal(s.LastError, bs[n:])
	return
}

func (workflowStateMUS) Unmarshal(bs []byte) (s WorkflowState, n int, err error) {
	var n1 int
	s.ThreadID, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var stage, category int
	stage, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	s.Stage = Stage(stage)
	category, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	s.Category = Category(category)
	var present bool
	present, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if present {
		var eval EvaluationResult
		eval, n1, err = EvaluationResultMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		s.Evaluation = &eval
	}
	present, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if present {
		var article CompiledArticle
		article, n1, err = CompiledArticleMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		s.Article = &article
	}
	s.Score, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	s.RetryCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	s.LastError, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (workflowStateMUS) Size(s WorkflowState) (size int) {
	size = IDMUS.Size(s.ThreadID)
	size += varint.Int.Size(int(s.Stage))
	size += varint.Int.Size(int(s.Category))
	size += ord.Bool.Size(s.Evaluation != nil)
	if s.Evaluation != nil {
		size += EvaluationResultMUS.Size(*s.Evaluation)
	}
	size += ord.Bool.Size(s.Article != nil)
	if s.Article != nil {
		size += CompiledArticleMUS.Size(*s.Article)
	}
	size += raw.Float64.Size(s.Score)
	size += varint.Int.Size(s.RetryCount)
	size += ord.String.Size(s.LastError)
	return
}

type checkpointMUS struct{}

func (checkpointMUS) Marshal(c Checkpoint, bs []byte) (n int) {
	n = IDMUS.Marshal(c.ThreadID, bs)
	n += WorkflowStateMUS.Marshal(c.State, bs[n:])
	n += varint.Uint64.Marshal(c.Version, bs[n:])
	n += varint.Int64.Marshal(c.UpdatedAt.UnixMicro(), bs[n:])
	return
}

func (checkpointMUS) Unmarshal(bs []byte) (c Checkpoint, n int, err error) {
	var n1 int
	c.ThreadID, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	c.State, n1, err = WorkflowStateMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Version, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	c.UpdatedAt = time.UnixMicro(micros).UTC()
	return
}

func (checkpointMUS) Size(c Checkpoint) (size int) {
	size = IDMUS.Size(c.ThreadID)
	size += WorkflowStateMUS.Size(c.State)
	size += varint.Uint64.Size(c.Version)
	size += varint.Int64.Size(c.UpdatedAt.UnixMicro())
	return
}

type publishedArticleMUS struct{}

func (publishedArticleMUS) Marshal(p PublishedArticle, bs []byte) (n int) {
	n = IDMUS.Marshal(p.ThreadID, bs)
	n += ord.String.Marshal(p.ChannelID, bs[n:])
	n += CompiledArticleMUS.Marshal(p.Article, bs[n:])
	n += raw.Float64.Marshal(p.Score, bs[n:])
	n += varint.Int64.Marshal(p.PublishedAt.UnixMicro(), bs[n:])
	return
}

func (publishedArticleMUS) Unmarshal(bs []byte) (p PublishedArticle, n int, err error) {
	var n1 int
	p.ThreadID, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	p.ChannelID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Article, n1, err = CompiledArticleMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Score, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	p.PublishedAt = time.UnixMicro(micros).UTC()
	return
}

func (publishedArticleMUS) Size(p PublishedArticle) (size int) {
	size = IDMUS.Size(p.ThreadID)
	size += ord.String.Size(p.ChannelID)
	size += CompiledArticleMUS.Size(p.Article)
	size += raw.Float64.Size(p.Score)
	size += varint.Int64.Size(p.PublishedAt.UnixMicro())
	return
}
