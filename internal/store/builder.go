package store

type matcherCase[S any] struct {
	match  func(Action) bool
	reduce Reducer[S]
}

// Builder 按 Action 类型注册 reducer，生成一个合并后的 Reducer。
// 执行顺序：先按注册顺序执行精确匹配的 case，再执行 matcher。
type Builder[S any] struct {
	cases    map[string][]Reducer[S]
	matchers []matcherCase[S]
}

func NewBuilder[S any]() *Builder[S] {
	return &Builder[S]{cases: make(map[string][]Reducer[S])}
}

func (b *Builder[S]) AddCase(actionType string, r Reducer[S]) *Builder[S] {
	b.cases[actionType] = append(b.cases[actionType], r)
	return b
}

func (b *Builder[S]) AddMatcher(match func(Action) bool, r Reducer[S]) *Builder[S] {
	b.matchers = append(b.matchers, matcherCase[S]{match: match, reduce: r})
	return b
}

func (b *Builder[S]) Build() Reducer[S] {
	// 拷贝一份，Build 之后继续 AddCase 不影响已生成的 reducer
	cases := make(map[string][]Reducer[S], len(b.cases))
	for k, v := range b.cases {
		cases[k] = append([]Reducer[S](nil), v...)
	}
	matchers := append([]matcherCase[S](nil), b.matchers...)

	return func(state S, a Action) S {
		for _, r := range cases[a.Type] {
			state = r(state, a)
		}
		for _, m := range matchers {
			if m.match(a) {
				state = m.reduce(state, a)
			}
		}
		return state
	}
}
