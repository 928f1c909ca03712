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

package resource

import (
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/restforge/core/access"
	"github.com/restforge/core/principal"
	"github.com/restforge/core/query"
	"github.com/restforge/core/scheme"
	"github.com/restforge/core/value"
)

var allowAll = &scheme.PermissionList{ByAction: map[scheme.Action]scheme.Permission{
	scheme.ActionCreate:    scheme.Full,
	scheme.ActionRead:      scheme.Full,
	scheme.ActionAppend:    scheme.Full,
	scheme.ActionUpdate:    scheme.Full,
	scheme.ActionRemove:    scheme.Full,
	scheme.ActionReference: scheme.Full,
}}

// schemes bundles the fixture schemes shared across the resource tests:
// widget references tag (Reference-Set), profile (Field-Object), itself
// (View "recent"), and carries Array/File/FullTextView property fields.
type schemes struct {
	widget, tag, profile *scheme.Scheme
}

func buildSchemes(widgetPermissions *scheme.PermissionList, widgetObjPerm scheme.ObjectPermissionFunc) schemes {
	reg := scheme.NewRegistry()
	err := reg.Build([]scheme.Config{
		{
			Name:        "tag",
			Fields:      map[string]scheme.FieldConfig{"name": {Name: "name", Type: scheme.Text}},
			Permissions: allowAll,
		},
		{
			Name:        "profile",
			Fields:      map[string]scheme.FieldConfig{"bio": {Name: "bio", Type: scheme.Text}},
			Permissions: allowAll,
		},
		{
			Name: "widget",
			Fields: map[string]scheme.FieldConfig{
				"name":        {Name: "name", Type: scheme.Text},
				"tags":        {Name: "tags", Type: scheme.Set, ForeignScheme: "tag"},
				"avatar":      {Name: "avatar", Type: scheme.Image},
				"attachments": {Name: "attachments", Type: scheme.Array},
				"profile":     {Name: "profile", Type: scheme.Object, ForeignScheme: "profile"},
				"recent":      {Name: "recent", Type: scheme.View, ForeignScheme: "widget"},
				"bio":         {Name: "bio", Type: scheme.FullTextView},
			},
			Permissions:      widgetPermissions,
			ObjectPermission: widgetObjPerm,
		},
	})
	Expect(err).NotTo(HaveOccurred())
	return schemes{
		widget:  reg.Lookup("widget"),
		tag:     reg.Lookup("tag"),
		profile: reg.Lookup("profile"),
	}
}

func newPolicy() *access.Policy {
	return &access.Policy{AdminBypassEnabled: false}
}

var _ = Describe("Resource Family prepare/act boundary invariants", func() {
	s := buildSchemes(allowAll, nil)

	It("Object: prepareCreate=false, prepareUpdate=true, prepareAppend=false", func() {
		r := &ObjectResource{Base{List: query.New(s.widget, query.KindObject, 4)}}
		Expect(r.PrepareCreate()).To(BeFalse())
		Expect(r.PrepareUpdate()).To(BeTrue())
		Expect(r.PrepareAppend()).To(BeFalse())
	})

	It("ResourceList: all three prepare gates are true", func() {
		r := &ResourceListResource{Base{List: query.New(s.widget, query.KindResourceList, 4)}}
		Expect(r.PrepareCreate()).To(BeTrue())
		Expect(r.PrepareUpdate()).To(BeTrue())
		Expect(r.PrepareAppend()).To(BeTrue())
	})

	It("Set: all three prepare gates are true (inherits ResourceList)", func() {
		r := &SetResource{ResourceListResource{Base{List: query.New(s.widget, query.KindSet, 4)}}}
		Expect(r.PrepareCreate()).To(BeTrue())
		Expect(r.PrepareUpdate()).To(BeTrue())
		Expect(r.PrepareAppend()).To(BeTrue())
	})

	It("ReferenceSet: all three prepare gates are true", func() {
		r := &ReferenceSetResource{Base{List: query.New(s.tag, query.KindReferenceSet, 4)}}
		Expect(r.PrepareCreate()).To(BeTrue())
		Expect(r.PrepareUpdate()).To(BeTrue())
		Expect(r.PrepareAppend()).To(BeTrue())
	})

	It("File: prepareCreate/Update=true, prepareAppend=false", func() {
		r := &FileResource{Base{List: query.New(s.widget, query.KindFile, 4)}}
		Expect(r.PrepareCreate()).To(BeTrue())
		Expect(r.PrepareUpdate()).To(BeTrue())
		Expect(r.PrepareAppend()).To(BeFalse())
	})

	It("Array: prepareCreate/Update=true, prepareAppend=false even though AppendObject works", func() {
		r := &ArrayResource{Base{List: query.New(s.widget, query.KindArray, 4)}}
		Expect(r.PrepareCreate()).To(BeTrue())
		Expect(r.PrepareUpdate()).To(BeTrue())
		Expect(r.PrepareAppend()).To(BeFalse())
	})

	It("FieldObject: prepareCreate/Update=true, prepareAppend=false", func() {
		r := &FieldObjectResource{Base{List: query.New(s.profile, query.KindFieldObject, 4)}}
		Expect(r.PrepareCreate()).To(BeTrue())
		Expect(r.PrepareUpdate()).To(BeTrue())
		Expect(r.PrepareAppend()).To(BeFalse())
	})

	It("View: all three prepare gates are false", func() {
		r := &ViewResource{Base{List: query.New(s.widget, query.KindView, 4)}}
		Expect(r.PrepareCreate()).To(BeFalse())
		Expect(r.PrepareUpdate()).To(BeFalse())
		Expect(r.PrepareAppend()).To(BeFalse())
	})

	It("Search: all three prepare gates are false", func() {
		r := &SearchResource{Base: Base{List: query.New(s.widget, query.KindSearch, 4)}}
		Expect(r.PrepareCreate()).To(BeFalse())
		Expect(r.PrepareUpdate()).To(BeFalse())
		Expect(r.PrepareAppend()).To(BeFalse())
	})
})

var _ = Describe("ObjectResource", func() {
	It("fetches and replaces the single addressed row", func() {
		s := buildSchemes(allowAll, nil)
		a := newFakeAdapter()
		oid := int64(1)
		row := value.NewDict()
		row.Set("name", value.String("widget one"))
		a.put(s.widget, oid, row)

		list := query.New(s.widget, query.KindObject, 4)
		list.Items()[0].OidTarget = &oid

		r := &ObjectResource{Base{List: list, Adapter: a, Worker: &fakeWorker{}, Policy: newPolicy()}}

		got, err := r.GetResultObject(context.Background())
		Expect(err).NotTo(HaveOccurred())
		d, ok := got.Dictionary()
		Expect(ok).To(BeTrue())
		name, _ := d.Get("name")
		s1, _ := name.String()
		Expect(s1).To(Equal("widget one"))

		patch := value.NewDict()
		patch.Set("name", value.String("renamed"))
		updated, err := r.UpdateObject(context.Background(), value.NewDictionary(patch))
		Expect(err).NotTo(HaveOccurred())
		ud, ok := updated.Dictionary()
		Expect(ok).To(BeTrue())
		un, _ := ud.Get("name")
		us, _ := un.String()
		Expect(us).To(Equal("renamed"))
	})

	It("refuses create and append", func() {
		s := buildSchemes(allowAll, nil)
		oid := int64(1)
		list := query.New(s.widget, query.KindObject, 4)
		list.Items()[0].OidTarget = &oid
		r := &ObjectResource{Base{List: list, Adapter: newFakeAdapter(), Worker: &fakeWorker{}, Policy: newPolicy()}}

		_, err := r.CreateObject(context.Background(), value.Null())
		Expect(err).To(HaveOccurred())
		_, err = r.AppendObject(context.Background(), value.Null())
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ResourceListResource mass operations", func() {
	It("deletes independently when more than one id resolves, true whenever the set is non-empty", func() {
		s := buildSchemes(allowAll, nil)
		a := newFakeAdapter()
		a.put(s.widget, 1, value.NewDict())
		a.put(s.widget, 2, value.NewDict())

		list := query.New(s.widget, query.KindResourceList, 4)
		r := &ResourceListResource{Base{List: list, Adapter: a, Worker: &fakeWorker{}, Policy: newPolicy()}}

		ok, err := r.RemoveObject(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(a.rows["widget"]).To(BeEmpty())
	})

	It("skips ids whose object-tier permission is Restrict without aborting the batch", func() {
		locked := int64(2)
		objPerm := func(ctx context.Context, user principal.User, sc *scheme.Scheme, action scheme.Action, object value.Value, patch *value.Dictionary) (scheme.Permission, error) {
			d, ok := object.Dictionary()
			if ok {
				if v, ok := d.Get("__oid"); ok {
					if id, ok := v.Int(); ok && id == locked {
						return scheme.Restrict, nil
					}
				}
			}
			return scheme.Full, nil
		}
		partial := &scheme.PermissionList{ByAction: map[scheme.Action]scheme.Permission{
			scheme.ActionUpdate: scheme.Partial,
			scheme.ActionRead:   scheme.Full,
			scheme.ActionCreate: scheme.Full,
			scheme.ActionRemove: scheme.Full,
		}}
		s := buildSchemes(partial, objPerm)
		a := newFakeAdapter()
		open := value.NewDict()
		open.Set("name", value.String("open"))
		a.put(s.widget, 1, open)
		lockedRow := value.NewDict()
		lockedRow.Set("name", value.String("locked"))
		a.put(s.widget, locked, lockedRow)

		list := query.New(s.widget, query.KindResourceList, 4)
		r := &ResourceListResource{Base{List: list, Adapter: a, Worker: &fakeWorker{}, Policy: newPolicy()}}

		patch := value.NewDict()
		patch.Set("name", value.String("renamed"))
		_, err := r.UpdateObject(context.Background(), value.NewDictionary(patch))
		Expect(err).NotTo(HaveOccurred())

		openName, _ := a.rows["widget"][1].Get("name")
		on, _ := openName.String()
		Expect(on).To(Equal("renamed"))

		lockedName, _ := a.rows["widget"][locked].Get("name")
		ln, _ := lockedName.String()
		Expect(ln).To(Equal("locked"))
	})
})

var _ = Describe("ReferenceSetResource", func() {
	setup := func() (schemes, *fakeAdapter, *ReferenceSetResource, int64) {
		s := buildSchemes(allowAll, nil)
		a := newFakeAdapter()
		parentOid := int64(42)
		a.put(s.widget, parentOid, value.NewDict())
		a.put(s.tag, 1, value.NewDict())
		a.put(s.tag, 2, value.NewDict())
		a.put(s.tag, 3, value.NewDict())

		list := query.New(s.widget, query.KindReferenceSet, 4)
		list.Items()[0].OidTarget = &parentOid
		tagsField, _ := s.widget.Field("tags")
		Expect(list.Push(tagsField, s.tag)).To(Succeed())
		list.SetFieldName("tags")

		r := &ReferenceSetResource{Base{List: list, Adapter: a, Worker: &fakeWorker{}, Policy: newPolicy()}}
		return s, a, r, parentOid
	}

	It("POST appends (union) to the existing set", func() {
		s, a, r, parentOid := setup()
		_, err := r.CreateObject(context.Background(), value.NewArray([]value.Value{value.Int(1), value.Int(2)}))
		Expect(err).NotTo(HaveOccurred())

		_, err = r.CreateObject(context.Background(), value.NewArray([]value.Value{value.Int(3)}))
		Expect(err).NotTo(HaveOccurred())

		field := a.fields[s.widget.Name()][parentOid]["tags"]
		items, ok := field.Array()
		Expect(ok).To(BeTrue())
		Expect(items).To(HaveLen(3))
	})

	It("PUT clears then assigns exactly the given ids", func() {
		s, a, r, parentOid := setup()
		_, err := r.CreateObject(context.Background(), value.NewArray([]value.Value{value.Int(1), value.Int(2), value.Int(3)}))
		Expect(err).NotTo(HaveOccurred())

		_, err = r.UpdateObject(context.Background(), value.NewArray([]value.Value{value.Int(2)}))
		Expect(err).NotTo(HaveOccurred())

		field := a.fields[s.widget.Name()][parentOid]["tags"]
		items, _ := field.Array()
		Expect(items).To(HaveLen(1))
		id, _ := items[0].Int()
		Expect(id).To(Equal(int64(2)))
	})

	It("DELETE with a filter removes exactly the filtered references", func() {
		s, a, r, parentOid := setup()
		_, err := r.CreateObject(context.Background(), value.NewArray([]value.Value{value.Int(1), value.Int(2), value.Int(3)}))
		Expect(err).NotTo(HaveOccurred())

		r.Filter = value.NewArray([]value.Value{value.Int(2)})
		ok, err := r.RemoveObject(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		field := a.fields[s.widget.Name()][parentOid]["tags"]
		items, _ := field.Array()
		Expect(items).To(HaveLen(2))
		ids := map[int64]bool{}
		for _, it := range items {
			id, _ := it.Int()
			ids[id] = true
		}
		Expect(ids).To(HaveKey(int64(1)))
		Expect(ids).To(HaveKey(int64(3)))
		Expect(ids).NotTo(HaveKey(int64(2)))
	})

	It("DELETE with no filter clears every reference", func() {
		s, a, r, parentOid := setup()
		_, err := r.CreateObject(context.Background(), value.NewArray([]value.Value{value.Int(1), value.Int(2)}))
		Expect(err).NotTo(HaveOccurred())

		ok, err := r.RemoveObject(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		field := a.fields[s.widget.Name()][parentOid]["tags"]
		items, _ := field.Array()
		Expect(items).To(BeEmpty())
	})
})

var _ = Describe("FieldObjectResource", func() {
	setup := func() (schemes, *fakeAdapter, *FieldObjectResource, int64) {
		s := buildSchemes(allowAll, nil)
		a := newFakeAdapter()
		parentOid := int64(7)
		a.put(s.widget, parentOid, value.NewDict())

		list := query.New(s.widget, query.KindFieldObject, 4)
		list.Items()[0].OidTarget = &parentOid
		profileField, _ := s.widget.Field("profile")
		Expect(list.Push(profileField, s.profile)).To(Succeed())

		r := &FieldObjectResource{Base{List: list, Adapter: a, Worker: &fakeWorker{}, Policy: newPolicy()}}
		return s, a, r, parentOid
	}

	It("creates the child row and patches the parent's reference", func() {
		s, a, r, parentOid := setup()
		payload := value.NewDict()
		payload.Set("bio", value.String("hello"))
		_, err := r.CreateObject(context.Background(), value.NewDictionary(payload))
		Expect(err).NotTo(HaveOccurred())

		parentRow := a.rows[s.widget.Name()][parentOid]
		refVal, ok := parentRow.Get("profile")
		Expect(ok).To(BeTrue())
		childOid, ok := refVal.AsInt64()
		Expect(ok).To(BeTrue())

		childRow := a.rows[s.profile.Name()][childOid]
		Expect(childRow).NotTo(BeNil())
	})

	It("replaces the child transactionally on PUT (remove-and-recreate)", func() {
		s, a, r, parentOid := setup()
		first := value.NewDict()
		first.Set("bio", value.String("first"))
		_, err := r.CreateObject(context.Background(), value.NewDictionary(first))
		Expect(err).NotTo(HaveOccurred())

		parentRow := a.rows[s.widget.Name()][parentOid]
		refVal, _ := parentRow.Get("profile")
		firstChildOid, _ := refVal.AsInt64()

		second := value.NewDict()
		second.Set("bio", value.String("second"))
		_, err = r.UpdateObject(context.Background(), value.NewDictionary(second))
		Expect(err).NotTo(HaveOccurred())

		_, stillThere := a.rows[s.profile.Name()][firstChildOid]
		Expect(stillThere).To(BeFalse())

		parentRow = a.rows[s.widget.Name()][parentOid]
		refVal, _ = parentRow.Get("profile")
		secondChildOid, _ := refVal.AsInt64()
		Expect(secondChildOid).NotTo(Equal(firstChildOid))
		bioVal, _ := a.rows[s.profile.Name()][secondChildOid].Get("bio")
		bio, _ := bioVal.String()
		Expect(bio).To(Equal("second"))
	})

	It("RemoveObject deletes the child and clears the parent's reference", func() {
		s, a, r, parentOid := setup()
		payload := value.NewDict()
		payload.Set("bio", value.String("hello"))
		_, err := r.CreateObject(context.Background(), value.NewDictionary(payload))
		Expect(err).NotTo(HaveOccurred())

		ok, err := r.RemoveObject(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		parentRow := a.rows[s.widget.Name()][parentOid]
		refVal, has := parentRow.Get("profile")
		Expect(has).To(BeTrue())
		Expect(refVal.IsNull()).To(BeTrue())
	})

	It("refuses append", func() {
		_, _, r, _ := setup()
		_, err := r.AppendObject(context.Background(), value.Null())
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ArrayResource", func() {
	setup := func() (schemes, *fakeAdapter, *ArrayResource, int64) {
		s := buildSchemes(allowAll, nil)
		a := newFakeAdapter()
		parentOid := int64(5)
		a.put(s.widget, parentOid, value.NewDict())
		list := query.New(s.widget, query.KindArray, 4)
		list.Items()[0].OidTarget = &parentOid
		list.SetFieldName("attachments")
		r := &ArrayResource{Base{List: list, Adapter: a, Worker: &fakeWorker{}, Policy: newPolicy()}}
		return s, a, r, parentOid
	}

	It("coerces a scalar payload into a one-element array on set", func() {
		s, a, r, parentOid := setup()
		_, err := r.CreateObject(context.Background(), value.Int(9))
		Expect(err).NotTo(HaveOccurred())
		field := a.fields[s.widget.Name()][parentOid]["attachments"]
		items, _ := field.Array()
		Expect(items).To(HaveLen(1))
	})

	It("append adds to the existing array without clearing it", func() {
		s, a, r, parentOid := setup()
		_, err := r.CreateObject(context.Background(), value.NewArray([]value.Value{value.Int(1), value.Int(2)}))
		Expect(err).NotTo(HaveOccurred())
		_, err = r.AppendObject(context.Background(), value.NewArray([]value.Value{value.Int(3)}))
		Expect(err).NotTo(HaveOccurred())
		field := a.fields[s.widget.Name()][parentOid]["attachments"]
		items, _ := field.Array()
		Expect(items).To(HaveLen(3))
	})

	It("clears the array on remove", func() {
		s, a, r, parentOid := setup()
		_, err := r.CreateObject(context.Background(), value.NewArray([]value.Value{value.Int(1)}))
		Expect(err).NotTo(HaveOccurred())
		ok, err := r.RemoveObject(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		field := a.fields[s.widget.Name()][parentOid]["attachments"]
		items, _ := field.Array()
		Expect(items).To(BeEmpty())
	})
})

var _ = Describe("FileResource", func() {
	It("uploads on create/update, clears on remove, refuses append", func() {
		s := buildSchemes(allowAll, nil)
		a := newFakeAdapter()
		parentOid := int64(3)
		a.put(s.widget, parentOid, value.NewDict())
		list := query.New(s.widget, query.KindFile, 4)
		list.Items()[0].OidTarget = &parentOid
		list.SetFieldName("avatar")
		r := &FileResource{Base{List: list, Adapter: a, Worker: &fakeWorker{}, Policy: newPolicy()}}

		content := value.Bytes([]byte("image-bytes"))
		_, err := r.CreateObject(context.Background(), content)
		Expect(err).NotTo(HaveOccurred())

		got, err := r.GetResultObject(context.Background())
		Expect(err).NotTo(HaveOccurred())
		b, ok := got.Bytes()
		Expect(ok).To(BeTrue())
		Expect(string(b)).To(Equal("image-bytes"))

		_, err = r.AppendObject(context.Background(), content)
		Expect(err).To(HaveOccurred())

		ok2, err := r.RemoveObject(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(ok2).To(BeTrue())
	})
})

var _ = Describe("ViewResource", func() {
	It("is read-only and reports its own per-item delta", func() {
		s := buildSchemes(allowAll, nil)
		a := newFakeAdapter()
		parentOid := int64(11)
		a.put(s.widget, parentOid, value.NewDict())

		list := query.New(s.widget, query.KindView, 4)
		list.Items()[0].OidTarget = &parentOid
		recentField, _ := s.widget.Field("recent")
		Expect(list.Push(recentField, s.widget)).To(Succeed())
		list.SetFieldName("recent")

		r := &ViewResource{Base{List: list, Adapter: a, Worker: &fakeWorker{}, Policy: newPolicy()}}

		_, err := r.GetResultObject(context.Background())
		Expect(err).NotTo(HaveOccurred())

		delta, err := r.ViewDelta(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(delta).To(Equal(int64(42)))

		_, err = r.CreateObject(context.Background(), value.Null())
		Expect(err).To(HaveOccurred())
		_, err = r.UpdateObject(context.Background(), value.Null())
		Expect(err).To(HaveOccurred())
		_, err = r.AppendObject(context.Background(), value.Null())
		Expect(err).To(HaveOccurred())
		_, err = r.RemoveObject(context.Background())
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("SearchResource", func() {
	It("attaches headlines to the configured fields when a HeadlineConfig is set", func() {
		s := buildSchemes(allowAll, nil)
		a := newFakeAdapter()
		row := value.NewDict()
		row.Set("name", value.String("a hello world widget"))
		a.put(s.widget, 1, row)

		list := query.New(s.widget, query.KindSearch, 4)
		list.SetFieldName("bio")
		list.SetFullTextQuery(&query.FullTextQuery{Field: "bio", Text: "hello"})

		cfg := &HeadlineConfig{
			Fields:     []string{"name"},
			StartToken: "<b>",
			StopToken:  "</b>",
		}
		r := &SearchResource{Base: Base{List: list, Adapter: a, Worker: &fakeWorker{}, Policy: newPolicy()}, Headline: cfg}

		result, err := r.GetResultObject(context.Background())
		Expect(err).NotTo(HaveOccurred())
		items, ok := result.Array()
		Expect(ok).To(BeTrue())
		Expect(items).To(HaveLen(1))

		d, _ := items[0].Dictionary()
		headlinesVal, ok := d.Get(value.KeyHeadline)
		Expect(ok).To(BeTrue())
		headlines, _ := headlinesVal.Dictionary()
		nameHeadline, ok := headlines.Get("name")
		Expect(ok).To(BeTrue())
		snippet, _ := nameHeadline.String()
		Expect(snippet).To(ContainSubstring("<b>hello</b>"))
	})

	It("returns results unchanged with no HeadlineConfig", func() {
		s := buildSchemes(allowAll, nil)
		a := newFakeAdapter()
		a.put(s.widget, 1, value.NewDict())
		list := query.New(s.widget, query.KindSearch, 4)
		list.SetFieldName("bio")
		r := &SearchResource{Base: Base{List: list, Adapter: a, Worker: &fakeWorker{}, Policy: newPolicy()}}
		_, err := r.GetResultObject(context.Background())
		Expect(err).NotTo(HaveOccurred())
	})

	It("refuses every mutating verb", func() {
		s := buildSchemes(allowAll, nil)
		list := query.New(s.widget, query.KindSearch, 4)
		r := &SearchResource{Base: Base{List: list, Adapter: newFakeAdapter(), Worker: &fakeWorker{}, Policy: newPolicy()}}
		_, err := r.CreateObject(context.Background(), value.Null())
		Expect(err).To(HaveOccurred())
		_, err = r.UpdateObject(context.Background(), value.Null())
		Expect(err).To(HaveOccurred())
		_, err = r.AppendObject(context.Background(), value.Null())
		Expect(err).To(HaveOccurred())
		_, err = r.RemoveObject(context.Background())
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("GenerateHeadline", func() {
	It("wraps matched terms with the configured start/stop tokens", func() {
		cfg := &HeadlineConfig{StartToken: "[", StopToken: "]", FragmentDelim: " / "}
		out := GenerateHeadline("the quick brown fox jumps", "fox", cfg)
		Expect(out).To(ContainSubstring("[fox]"))
	})

	It("returns the whole text when the search text is empty", func() {
		cfg := &HeadlineConfig{StartToken: "[", StopToken: "]"}
		out := GenerateHeadline("plain text", "", cfg)
		Expect(out).To(Equal("plain text"))
	})
})
