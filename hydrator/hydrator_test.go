/**
 * Copyright (c) 2026, The Restforge Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package hydrator

import (
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/google/uuid"

	"github.com/restforge/core/scheme"
	"github.com/restforge/core/value"
)

type testSchemes struct {
	widget, tag, profile *scheme.Scheme
}

func buildTestSchemes() testSchemes {
	r := scheme.NewRegistry()
	err := r.Build([]scheme.Config{
		{
			Name:   "tag",
			Fields: map[string]scheme.FieldConfig{"name": {Name: "name", Type: scheme.Text}},
		},
		{
			Name:   "profile",
			Fields: map[string]scheme.FieldConfig{"bio": {Name: "bio", Type: scheme.Text}},
		},
		{
			Name: "widget",
			Fields: map[string]scheme.FieldConfig{
				"name":    {Name: "name", Type: scheme.Text},
				"secret":  {Name: "secret", Type: scheme.Text, Flags: scheme.Protected},
				"uid":     {Name: "uid", Type: scheme.Bytes, Transform: scheme.UuidTransform},
				"tags":    {Name: "tags", Type: scheme.Set, ForeignScheme: "tag"},
				"profile": {Name: "profile", Type: scheme.Object, ForeignScheme: "profile"},
				"self":    {Name: "self", Type: scheme.Object, ForeignScheme: "widget"},
				"avatar":  {Name: "avatar", Type: scheme.Image},
				"notes":   {Name: "notes", Type: scheme.Array},
			},
		},
	})
	Expect(err).NotTo(HaveOccurred())

	return testSchemes{
		widget:  r.Lookup("widget"),
		tag:     r.Lookup("tag"),
		profile: r.Lookup("profile"),
	}
}

var _ = Describe("Hydrator", func() {
	var (
		ctx context.Context
		s   testSchemes
		a   *fakeAdapter
	)

	BeforeEach(func() {
		ctx = context.Background()
		s = buildTestSchemes()
		a = newFakeAdapter()
	})

	rootDict := func(oid int64, name string) *value.Dictionary {
		d := value.NewDict()
		d.Set("name", value.String(name))
		d.Set("secret", value.String("shh"))
		return d
	}

	It("emits scalar fields flat and drops Protected fields with no include set", func() {
		d := rootDict(1, "widget-one")
		a.put(s.widget, 1, d)

		h := New(a, fakeWorker{}, 3)
		node := NewFieldResolver(s.widget, ResolveNone, MetaNone)

		out, err := h.Hydrate(ctx, node, value.NewDictionary(d))
		Expect(err).NotTo(HaveOccurred())

		outDict, ok := out.Dictionary()
		Expect(ok).To(BeTrue())

		name, _ := outDict.Get("name")
		nameStr, _ := name.String()
		Expect(nameStr).To(Equal("widget-one"))

		Expect(outDict.Has("secret")).To(BeFalse())
		Expect(outDict.Has("tags")).To(BeFalse())
		Expect(outDict.Has("profile")).To(BeFalse())
	})

	It("materializes an Object field only when included, recursing into the fetched row", func() {
		d := rootDict(2, "widget-two")
		d.Set("profile", value.Int(50))
		a.put(s.widget, 2, d)
		a.put(s.profile, 50, func() *value.Dictionary {
			pd := value.NewDict()
			pd.Set("bio", value.String("hello"))
			return pd
		}())

		h := New(a, fakeWorker{}, 3)
		node := ParseResolveList(s.widget, "profile", MetaNone)

		out, err := h.Hydrate(ctx, node, value.NewDictionary(d))
		Expect(err).NotTo(HaveOccurred())
		outDict, _ := out.Dictionary()

		profileVal, ok := outDict.Get("profile")
		Expect(ok).To(BeTrue())
		profileDict, ok := profileVal.Dictionary()
		Expect(ok).To(BeTrue())
		bio, _ := profileDict.Get("bio")
		bioStr, _ := bio.String()
		Expect(bioStr).To(Equal("hello"))
	})

	It("collapses a self-referential Object field already emitted in this request", func() {
		d := rootDict(3, "widget-three")
		d.Set("self", value.Int(3))
		a.put(s.widget, 3, d)

		h := New(a, fakeWorker{}, 3)
		node := ParseResolveList(s.widget, "self", MetaNone)

		out, err := h.Hydrate(ctx, node, value.NewDictionary(d))
		Expect(err).NotTo(HaveOccurred())
		outDict, _ := out.Dictionary()

		selfVal, ok := outDict.Get("self")
		Expect(ok).To(BeTrue())
		selfDict, ok := selfVal.Dictionary()
		Expect(ok).To(BeTrue())
		Expect(selfDict.Len()).To(Equal(1))
		oidVal, ok := selfDict.Get(value.KeyOid)
		Expect(ok).To(BeTrue())
		oid, _ := oidVal.Int()
		Expect(oid).To(Equal(int64(3)))
	})

	It("fetches a Set field's collection when the $sets resolve token is set", func() {
		d := rootDict(4, "widget-four")
		a.put(s.widget, 4, d)
		a.put(s.tag, 10, func() *value.Dictionary { td := value.NewDict(); td.Set("name", value.String("red")); return td }())
		a.put(s.tag, 11, func() *value.Dictionary { td := value.NewDict(); td.Set("name", value.String("blue")); return td }())
		tagsField, _ := s.widget.Field("tags")
		a.link(s.widget, tagsField.Name(), 4, 10)
		a.link(s.widget, tagsField.Name(), 4, 11)

		h := New(a, fakeWorker{}, 3)
		node := ParseResolveList(s.widget, "$sets", MetaNone)

		out, err := h.Hydrate(ctx, node, value.NewDictionary(d))
		Expect(err).NotTo(HaveOccurred())
		outDict, _ := out.Dictionary()

		tagsVal, ok := outDict.Get("tags")
		Expect(ok).To(BeTrue())
		items, ok := tagsVal.Array()
		Expect(ok).To(BeTrue())
		Expect(items).To(HaveLen(2))
		firstDict, _ := items[0].Dictionary()
		firstName, _ := firstDict.Get("name")
		firstNameStr, _ := firstName.String()
		Expect(firstNameStr).To(Equal("red"))
	})

	It("emits only ids for a Set field when $ids is combined with $sets", func() {
		d := rootDict(5, "widget-five")
		a.put(s.widget, 5, d)
		tagsField, _ := s.widget.Field("tags")
		a.link(s.widget, tagsField.Name(), 5, 20)
		a.link(s.widget, tagsField.Name(), 5, 21)

		h := New(a, fakeWorker{}, 3)
		node := ParseResolveList(s.widget, "$sets,$ids", MetaNone)

		out, err := h.Hydrate(ctx, node, value.NewDictionary(d))
		Expect(err).NotTo(HaveOccurred())
		outDict, _ := out.Dictionary()

		tagsVal, ok := outDict.Get("tags")
		Expect(ok).To(BeTrue())
		items, ok := tagsVal.Array()
		Expect(ok).To(BeTrue())
		Expect(items).To(HaveLen(2))
		first, ok := items[0].Int()
		Expect(ok).To(BeTrue())
		Expect(first).To(Equal(int64(20)))
	})

	It("fetches an Array field directly via the Adapter's Field verb", func() {
		d := rootDict(6, "widget-six")
		a.put(s.widget, 6, d)
		a.putField(s.widget, 6, "notes", value.NewArray([]value.Value{value.String("a"), value.String("b")}))

		h := New(a, fakeWorker{}, 3)
		node := NewFieldResolver(s.widget, ResolveNone, MetaNone)

		out, err := h.Hydrate(ctx, node, value.NewDictionary(d))
		Expect(err).NotTo(HaveOccurred())
		outDict, _ := out.Dictionary()

		notesVal, ok := outDict.Get("notes")
		Expect(ok).To(BeTrue())
		items, ok := notesVal.Array()
		Expect(ok).To(BeTrue())
		Expect(items).To(HaveLen(2))
	})

	It("fetches a File/Image field as a sub-dictionary only under $files", func() {
		d := rootDict(7, "widget-seven")
		a.put(s.widget, 7, d)
		avatar := value.NewDict()
		avatar.Set("mime", value.String("image/png"))
		a.putField(s.widget, 7, "avatar", value.NewDictionary(avatar))

		h := New(a, fakeWorker{}, 3)

		flatNode := NewFieldResolver(s.widget, ResolveNone, MetaNone)
		flatOut, err := h.Hydrate(ctx, flatNode, value.NewDictionary(d))
		Expect(err).NotTo(HaveOccurred())
		flatDict, _ := flatOut.Dictionary()
		Expect(flatDict.Has("avatar")).To(BeFalse())

		h2 := New(a, fakeWorker{}, 3)
		filesNode := ParseResolveList(s.widget, "$files", MetaNone)
		filesOut, err := h2.Hydrate(ctx, filesNode, value.NewDictionary(d))
		Expect(err).NotTo(HaveOccurred())
		filesDict, _ := filesOut.Dictionary()
		avatarVal, ok := filesDict.Get("avatar")
		Expect(ok).To(BeTrue())
		avatarDict, _ := avatarVal.Dictionary()
		mime, _ := avatarDict.Get("mime")
		mimeStr, _ := mime.String()
		Expect(mimeStr).To(Equal("image/png"))
	})

	It("formats a Uuid-transformed Bytes field to its string representation", func() {
		id := uuid.New()
		d := rootDict(8, "widget-eight")
		d.Set("uid", value.Bytes(id[:]))
		a.put(s.widget, 8, d)

		h := New(a, fakeWorker{}, 3)
		node := NewFieldResolver(s.widget, ResolveNone, MetaNone)

		out, err := h.Hydrate(ctx, node, value.NewDictionary(d))
		Expect(err).NotTo(HaveOccurred())
		outDict, _ := out.Dictionary()

		uidVal, ok := outDict.Get("uid")
		Expect(ok).To(BeTrue())
		uidStr, ok := uidVal.String()
		Expect(ok).To(BeTrue())
		Expect(uidStr).To(Equal(id.String()))
	})

	It("drops a non-tombstone __delta when no delta meta is requested, and keeps it intact otherwise", func() {
		d := rootDict(9, "widget-nine")
		deltaDict := value.NewDict()
		deltaDict.Set("action", value.String("update"))
		deltaDict.Set("time", value.Int(1234))
		d.Set(value.KeyDelta, value.NewDictionary(deltaDict))
		a.put(s.widget, 9, d)

		h := New(a, fakeWorker{}, 3)
		bareNode := NewFieldResolver(s.widget, ResolveNone, MetaNone)
		bareOut, err := h.Hydrate(ctx, bareNode, value.NewDictionary(d))
		Expect(err).NotTo(HaveOccurred())
		bareDict, _ := bareOut.Dictionary()
		Expect(bareDict.Has(value.KeyDelta)).To(BeFalse())

		h2 := New(a, fakeWorker{}, 3)
		fullNode := NewFieldResolver(s.widget, ResolveNone, MetaAction|MetaTime)
		fullOut, err := h2.Hydrate(ctx, fullNode, value.NewDictionary(d))
		Expect(err).NotTo(HaveOccurred())
		fullDict, _ := fullOut.Dictionary()
		deltaVal, ok := fullDict.Get(value.KeyDelta)
		Expect(ok).To(BeTrue())
		deltaOut, _ := deltaVal.Dictionary()
		action, _ := deltaOut.Get("action")
		actionStr, _ := action.String()
		Expect(actionStr).To(Equal("update"))
	})

	It("leaves a relation field as its raw placeholder once the configured max depth is reached", func() {
		d := rootDict(12, "widget-twelve")
		d.Set("profile", value.Int(60))
		a.put(s.widget, 12, d)
		a.put(s.profile, 60, func() *value.Dictionary { pd := value.NewDict(); pd.Set("bio", value.String("deep")); return pd }())

		h := New(a, fakeWorker{}, 0)
		node := ParseResolveList(s.widget, "profile", MetaNone)

		out, err := h.Hydrate(ctx, node, value.NewDictionary(d))
		Expect(err).NotTo(HaveOccurred())
		outDict, _ := out.Dictionary()

		profileVal, ok := outDict.Get("profile")
		Expect(ok).To(BeTrue())
		_, isDict := profileVal.Dictionary()
		Expect(isDict).To(BeFalse())
		oid, ok := profileVal.Int()
		Expect(ok).To(BeTrue())
		Expect(oid).To(Equal(int64(60)))
	})
})
